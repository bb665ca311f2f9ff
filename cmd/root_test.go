package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/ngsteer/internal/config"
	"github.com/zjrosen/ngsteer/internal/project"
)

// resetConfig restores the package-level config state after a test.
func resetConfig(t *testing.T) {
	t.Helper()
	prevCfg, prevFile, prevDebug := cfg, cfgFile, cfgDebug
	t.Cleanup(func() {
		cfg, cfgFile, cfgDebug = prevCfg, prevFile, prevDebug
	})
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	resetConfig(t)
	cfgFile = filepath.Join(t.TempDir(), "missing.yaml")

	// An explicitly named config file must exist.
	require.Error(t, loadConfig())
}

func TestLoadConfig_ReadsFile(t *testing.T) {
	resetConfig(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
steering:
  user_dir: /tmp/steer
  enabled:
    - legacy-refactor
detect:
  cache_ttl: 90s
index:
  path: /tmp/ngsteer.db
telemetry:
  exporter: stdout
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfgFile = path

	require.NoError(t, loadConfig())
	require.True(t, cfg.Debug)
	require.Equal(t, "/tmp/steer", cfg.Steering.UserDir)
	require.Equal(t, []string{"legacy-refactor"}, cfg.Steering.Enabled)
	require.Equal(t, "90s", cfg.Detect.CacheTTL.String())
	require.Equal(t, "/tmp/ngsteer.db", cfg.Index.Path)
	require.Equal(t, "stdout", cfg.Telemetry.Exporter)

	// Unset fields keep their defaults.
	require.Equal(t, config.Defaults().Detect.Debounce, cfg.Detect.Debounce)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telemetry:\n  exporter: carrier-pigeon\n"), 0o644))
	cfgFile = path

	require.Error(t, loadConfig())
}

func TestLoadConfig_DebugFlagOverridesFile(t *testing.T) {
	resetConfig(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: false\n"), 0o644))
	cfgFile = path
	cfgDebug = true

	require.NoError(t, loadConfig())
	require.True(t, cfg.Debug)
}

func TestDescribeDetectError(t *testing.T) {
	err := describeDetectError("/proj", project.ErrNoManifest)
	require.ErrorContains(t, err, "no package.json")

	err = describeDetectError("/proj", project.ErrNotAngular)
	require.ErrorContains(t, err, "@angular/core")

	err = describeDetectError("/proj", os.ErrPermission)
	require.ErrorIs(t, err, os.ErrPermission)
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"detect", "advise", "steering", "show", "examples", "reindex", "search", "serve", "init"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		require.True(t, found, "subcommand %s not registered", name)
	}
}
