package refactor

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	steeringapp "github.com/zjrosen/ngsteer/internal/steering/application"
	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
	"github.com/zjrosen/ngsteer/steeringdocs"
)

func loadLegacyRefactorBody(t *testing.T) string {
	t.Helper()
	data, err := fs.ReadFile(steeringdocs.DocsFS(), steeringdocs.Dir+"/legacy-refactor.md")
	require.NoError(t, err)
	doc := steeringapp.ParseDocument("legacy-refactor", data, steering.SourceBuiltIn, "")
	return doc.Content
}

func TestExtract_ShippedDocument(t *testing.T) {
	examples := Extract(loadLegacyRefactorBody(t))
	require.Len(t, examples, 4)

	byID := make(map[string]Example)
	for _, ex := range examples {
		byID[ex.ID] = ex
	}

	standalone, ok := byID["ngmodule-component-to-standalone"]
	require.True(t, ok, "missing standalone example, got %v", ids(examples))
	require.Equal(t, "standalone", standalone.Feature)
	require.Contains(t, standalone.Before, "@NgModule")
	require.Contains(t, standalone.After, "standalone: true")
	require.Equal(t, "typescript", standalone.Lang)

	controlFlow, ok := byID["structural-directives-to-built-in-control-flow"]
	require.True(t, ok)
	require.Equal(t, "control_flow", controlFlow.Feature)
	require.Contains(t, controlFlow.Before, "*ngIf")
	require.Contains(t, controlFlow.After, "@if")
	require.Equal(t, "html", controlFlow.Lang)

	signals, ok := byID["subject-based-state-to-signals"]
	require.True(t, ok)
	require.Equal(t, "signals", signals.Feature)
	require.Contains(t, signals.Before, "BehaviorSubject")
	require.Contains(t, signals.After, "signal(0)")

	inject, ok := byID["constructor-injection-to-inject"]
	require.True(t, ok)
	require.Equal(t, "inject", inject.Feature)
}

func ids(examples []Example) []string {
	out := make([]string, 0, len(examples))
	for _, ex := range examples {
		out = append(out, ex.ID)
	}
	return out
}

func TestExtract_SkipsIncompleteSections(t *testing.T) {
	content := `## Only a before

**Feature:** signals

### Before

` + "```typescript\nold\n```" + `

## Complete

**Feature:** inject

### Before

` + "```typescript\nold\n```" + `

### After

` + "```typescript\nnew\n```" + `
`
	examples := Extract(content)
	require.Len(t, examples, 1)
	require.Equal(t, "complete", examples[0].ID)
}

func TestExtract_EmptyContent(t *testing.T) {
	require.Empty(t, Extract(""))
	require.Empty(t, Extract("# Heading only\n\nprose\n"))
}

func TestExample_Diff(t *testing.T) {
	ex := Example{Before: "constructor(private http: HttpClient) {}", After: "private http = inject(HttpClient);"}

	diff := ex.Diff()
	require.NotEmpty(t, diff)
	require.Contains(t, diff, "HttpClient")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"NgModule component to standalone", "ngmodule-component-to-standalone"},
		{"Constructor injection to inject()", "constructor-injection-to-inject"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.expected, slugify(tc.title))
	}
}
