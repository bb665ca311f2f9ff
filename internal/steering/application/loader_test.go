package steering

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
)

const guidanceDoc = `---
inclusion: always
name: angular-guidance
description: Version-aware guidance.
keywords: [angular, signals]
---

# Angular Development Guidance

Body text.
`

func TestSplitFrontmatter(t *testing.T) {
	meta, body, ok := splitFrontmatter("---\ninclusion: always\n---\nbody here\n")
	require.True(t, ok)
	require.Equal(t, "inclusion: always", meta)
	require.Equal(t, "body here\n", body)
}

func TestSplitFrontmatter_NoFrontmatter(t *testing.T) {
	content := "# Just Markdown\n\nNo metadata.\n"
	_, body, ok := splitFrontmatter(content)
	require.False(t, ok)
	require.Equal(t, content, body)
}

func TestSplitFrontmatter_UnterminatedBlock(t *testing.T) {
	content := "---\ninclusion: always\nno closing delimiter\n"
	_, body, ok := splitFrontmatter(content)
	require.False(t, ok)
	require.Equal(t, content, body)
}

func TestParseDocument(t *testing.T) {
	doc := ParseDocument("angular-guidance", []byte(guidanceDoc), steering.SourceBuiltIn, "")

	require.Equal(t, "angular-guidance", doc.ID)
	require.Equal(t, "angular-guidance", doc.Name)
	require.Equal(t, "Version-aware guidance.", doc.Description)
	require.Equal(t, steering.InclusionAlways, doc.Inclusion)
	require.Equal(t, []string{"angular", "signals"}, doc.Keywords)
	require.Contains(t, doc.Content, "# Angular Development Guidance")
	require.NotContains(t, doc.Content, "inclusion: always", "frontmatter should be stripped from Content")
	require.Contains(t, doc.Raw, "inclusion: always", "Raw should keep frontmatter")
}

func TestParseDocument_NoFrontmatterDefaultsToManual(t *testing.T) {
	doc := ParseDocument("notes", []byte("# Notes\n"), steering.SourceUser, "/tmp/notes.md")

	require.Equal(t, steering.InclusionManual, doc.Inclusion)
	require.Equal(t, "notes", doc.Name)
	require.Equal(t, "# Notes\n", doc.Content)
	require.Equal(t, "/tmp/notes.md", doc.FilePath)
}

func TestParseDocument_InvalidYAMLFallsBack(t *testing.T) {
	content := "---\ninclusion: [unclosed\n---\n# Body\n"
	doc := ParseDocument("broken", []byte(content), steering.SourceUser, "")

	require.Equal(t, steering.InclusionManual, doc.Inclusion)
	require.Equal(t, content, doc.Content, "unparseable frontmatter keeps full content")
}

func TestParseDocument_UnknownInclusionTreatedAsManual(t *testing.T) {
	doc := ParseDocument("odd", []byte("---\ninclusion: sometimes\n---\nbody\n"), steering.SourceBuiltIn, "")
	require.Equal(t, steering.InclusionManual, doc.Inclusion)
}

func TestParseDocument_DisplayNameWinsOverName(t *testing.T) {
	content := "---\nname: power\ndisplayName: Angular Steering\n---\nbody\n"
	doc := ParseDocument("POWER", []byte(content), steering.SourceBuiltIn, "")
	require.Equal(t, "Angular Steering", doc.Name)
}

func TestParsePowerManifest(t *testing.T) {
	content := `---
name: angular-steering
displayName: Angular Steering
description: Version-aware Angular guidance.
keywords: [angular, steering]
author: zjrosen
---

# Angular Steering
`
	m, body, err := ParsePowerManifest([]byte(content))
	require.NoError(t, err)
	require.Equal(t, "angular-steering", m.Name)
	require.Equal(t, "Angular Steering", m.DisplayName)
	require.Equal(t, "zjrosen", m.Author)
	require.Equal(t, []string{"angular", "steering"}, m.Keywords)
	require.Contains(t, body, "# Angular Steering")
}

func TestParsePowerManifest_MissingFrontmatterFails(t *testing.T) {
	_, _, err := ParsePowerManifest([]byte("# No metadata\n"))
	require.Error(t, err)
}

func TestParsePowerManifest_MissingNameFails(t *testing.T) {
	_, _, err := ParsePowerManifest([]byte("---\nauthor: someone\n---\nbody\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "name")
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/one.md":     {Data: []byte(guidanceDoc)},
		"docs/two.md":     {Data: []byte("# Two\n")},
		"docs/readme.txt": {Data: []byte("ignored")},
	}

	docs, err := LoadFromFS(fsys, "docs", steering.SourceBuiltIn)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		require.Equal(t, steering.SourceBuiltIn, doc.Source)
	}
}

func TestLoadFromFS_MissingDirFails(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{}, "docs", steering.SourceBuiltIn)
	require.Error(t, err)
}

func TestLoadUserDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "team-conventions.md"), []byte(guidanceDoc), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("ignored"), 0600))

	docs := LoadUserDir(dir)
	require.Len(t, docs, 1)
	require.Equal(t, "team-conventions", docs[0].ID)
	require.Equal(t, steering.SourceUser, docs[0].Source)
	require.Equal(t, filepath.Join(dir, "team-conventions.md"), docs[0].FilePath)
}

func TestLoadUserDir_MissingDirIsEmpty(t *testing.T) {
	docs := LoadUserDir(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Empty(t, docs)
}
