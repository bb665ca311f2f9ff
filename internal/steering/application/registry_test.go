package steering

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
	"github.com/zjrosen/ngsteer/steeringdocs"
)

func newBuiltinRegistry(t *testing.T, opts RegistryOptions) *Registry {
	t.Helper()
	opts.BuiltinFS = steeringdocs.DocsFS()
	opts.BuiltinDir = steeringdocs.Dir
	r, err := NewRegistry(opts)
	require.NoError(t, err)
	return r
}

func TestNewRegistry_LoadsBuiltins(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{})

	guidance, ok := r.Get("angular-guidance")
	require.True(t, ok)
	require.Equal(t, steering.InclusionAlways, guidance.Inclusion)
	require.Equal(t, steering.SourceBuiltIn, guidance.Source)

	refactor, ok := r.Get("legacy-refactor")
	require.True(t, ok)
	require.Equal(t, steering.InclusionManual, refactor.Inclusion)
}

func TestNewRegistry_ParsesPowerManifest(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{})

	m, ok := r.Manifest()
	require.True(t, ok)
	require.Equal(t, "angular-steering", m.Name)
	require.Equal(t, "Angular Steering", m.DisplayName)
	require.NotEmpty(t, m.Keywords)
	require.NotEmpty(t, m.Author)
}

func TestNewRegistry_UserDocShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	custom := "---\ninclusion: always\ndescription: House rules.\n---\n# Our Angular Guidance\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "angular-guidance.md"), []byte(custom), 0600))

	r := newBuiltinRegistry(t, RegistryOptions{UserDir: dir})

	doc, ok := r.Get("angular-guidance")
	require.True(t, ok)
	require.Equal(t, steering.SourceUser, doc.Source)
	require.Equal(t, "House rules.", doc.Description)

	// Shadowing replaces, never duplicates.
	var count int
	for _, d := range r.List() {
		if d.ID == "angular-guidance" {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestRegistry_ListBySource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "team-conventions.md"),
		[]byte("---\ninclusion: manual\n---\nbody\n"), 0600))

	r := newBuiltinRegistry(t, RegistryOptions{UserDir: dir})

	builtins := r.ListBySource(steering.SourceBuiltIn)
	require.Len(t, builtins, 3)

	users := r.ListBySource(steering.SourceUser)
	require.Len(t, users, 1)
	require.Equal(t, "team-conventions", users[0].ID)
}

func TestRegistry_ContextDocuments_DefaultIsAlwaysOnly(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{})

	docs := r.ContextDocuments()
	require.Len(t, docs, 1)
	require.Equal(t, "angular-guidance", docs[0].ID)
}

func TestRegistry_ContextDocuments_RequestedManualIncluded(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{})

	docs := r.ContextDocuments("legacy-refactor")
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	require.ElementsMatch(t, []string{"angular-guidance", "legacy-refactor"}, ids)
}

func TestRegistry_ContextDocuments_EnabledManualIncluded(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{Enabled: []string{"legacy-refactor"}})

	docs := r.ContextDocuments()
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	require.ElementsMatch(t, []string{"angular-guidance", "legacy-refactor"}, ids)
	require.True(t, r.Enabled("legacy-refactor"))
}

func TestRegistry_ContextDocuments_UnknownRequestSkipped(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{})

	docs := r.ContextDocuments("no-such-doc")
	require.Len(t, docs, 1, "unknown requested IDs are skipped, not fatal")
}

func TestRegistry_ContextDocuments_ManifestNeverInjected(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{Enabled: []string{"POWER"}})

	for _, doc := range r.ContextDocuments("POWER") {
		require.NotEqual(t, "POWER", doc.ID)
	}
}

func TestNewRegistry_UnknownEnabledIDIsNotFatal(t *testing.T) {
	r := newBuiltinRegistry(t, RegistryOptions{Enabled: []string{"missing-doc"}})
	require.False(t, r.Enabled("missing-doc"))
}
