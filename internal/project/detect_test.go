package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0600))
}

func TestDetect_FromDependencies(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"dependencies": {
			"@angular/core": "^18.2.0",
			"rxjs": "~7.8.0"
		}
	}`)

	d, err := Detect(dir)
	require.NoError(t, err)
	require.Equal(t, 18, d.Major)
	require.Equal(t, "^18.2.0", d.Raw)
	require.Equal(t, "dependencies", d.Method)
	require.Equal(t, filepath.Join(dir, "package.json"), d.ManifestPath)
	require.False(t, d.HasWorkspaceConfig)
}

func TestDetect_DependenciesWinOverDevDependencies(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
		"dependencies": {"@angular/core": "^17.0.0"},
		"devDependencies": {"@angular/core": "^18.0.0"}
	}`)

	d, err := Detect(dir)
	require.NoError(t, err)
	require.Equal(t, 17, d.Major)
	require.Equal(t, "dependencies", d.Method)
}

func TestDetect_FromDevDependencies(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"devDependencies": {"@angular/core": "~16.1.0"}}`)

	d, err := Detect(dir)
	require.NoError(t, err)
	require.Equal(t, 16, d.Major)
	require.Equal(t, "devDependencies", d.Method)
}

func TestDetect_WorkspaceConfigDetected(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"dependencies": {"@angular/core": "19.0.0"}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "angular.json"), []byte("{}"), 0600))

	d, err := Detect(dir)
	require.NoError(t, err)
	require.True(t, d.HasWorkspaceConfig)
}

func TestDetect_NoManifest(t *testing.T) {
	_, err := Detect(t.TempDir())
	require.ErrorIs(t, err, ErrNoManifest)
}

func TestDetect_NotAngular(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"dependencies": {"react": "^18.0.0"}}`)

	_, err := Detect(dir)
	require.ErrorIs(t, err, ErrNotAngular)
}

func TestDetect_MalformedManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{not json`)

	_, err := Detect(dir)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotAngular)
}

func TestDetect_UnparseableRange(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"dependencies": {"@angular/core": "*"}}`)

	_, err := Detect(dir)
	var rangeErr *RangeParseError
	require.ErrorAs(t, err, &rangeErr)
	require.Equal(t, "*", rangeErr.Raw)
}

func TestMajorFromRange(t *testing.T) {
	tests := []struct {
		raw   string
		major int
	}{
		{"18.2.0", 18},
		{"^18.2.0", 18},
		{"~17.0.1", 17},
		{"v16.0.0", 16},
		{">=15.0.0", 15},
		{">=17 <19", 17},
		{"17 || 18", 17},
		{"18.x", 18},
		{"14.X", 14},
		{"13.*", 13},
		{"20", 20},
		{"19.1", 19},
		{"  ^18.0.0  ", 18},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			major, err := majorFromRange(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.major, major)
		})
	}
}

func TestMajorFromRange_Invalid(t *testing.T) {
	for _, raw := range []string{"", "*", "latest", "next", "not-a-version"} {
		t.Run(raw, func(t *testing.T) {
			_, err := majorFromRange(raw)
			var rangeErr *RangeParseError
			require.True(t, errors.As(err, &rangeErr), "want RangeParseError for %q, got %v", raw, err)
		})
	}
}
