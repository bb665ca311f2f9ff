// Package config provides configuration types and defaults for ngsteer.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SteeringConfig controls steering document loading.
type SteeringConfig struct {
	// UserDir is the directory of user-authored steering documents.
	// User documents shadow built-ins with the same ID.
	UserDir string `mapstructure:"user_dir"`

	// Enabled opts manual-inclusion documents into every context, by ID.
	Enabled []string `mapstructure:"enabled"`
}

// DetectConfig controls version detection behavior.
type DetectConfig struct {
	// CacheTTL is how long the MCP server trusts a detection result for a
	// project directory before re-reading package.json.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	// Debounce is how long watch mode waits after the last manifest write
	// before re-running detection.
	Debounce time.Duration `mapstructure:"debounce"`
}

// IndexConfig controls the documentation search index.
type IndexConfig struct {
	// Path is the SQLite database file for the index.
	Path string `mapstructure:"path"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	// Exporter selects the span exporter.
	// Valid values: "none", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// Endpoint is the OTLP gRPC endpoint, used when Exporter is "otlp".
	Endpoint string `mapstructure:"endpoint"`
}

// Config holds all configuration options for ngsteer.
type Config struct {
	Debug     bool            `mapstructure:"debug"`
	LogFile   string          `mapstructure:"log_file"`
	Steering  SteeringConfig  `mapstructure:"steering"`
	Detect    DetectConfig    `mapstructure:"detect"`
	Index     IndexConfig     `mapstructure:"index"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// DataDir returns the ngsteer data directory (~/.ngsteer), falling back to
// a relative path when the home directory cannot be resolved.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ngsteer"
	}
	return filepath.Join(home, ".ngsteer")
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	dataDir := DataDir()
	return Config{
		Debug:   false,
		LogFile: filepath.Join(dataDir, "ngsteer.log"),
		Steering: SteeringConfig{
			UserDir: filepath.Join(dataDir, "steering"),
		},
		Detect: DetectConfig{
			CacheTTL: 5 * time.Minute,
			Debounce: 500 * time.Millisecond,
		},
		Index: IndexConfig{
			Path: filepath.Join(dataDir, "index.db"),
		},
		Telemetry: TelemetryConfig{
			Exporter: "none",
		},
	}
}

// ValidateTelemetry checks telemetry configuration for errors.
func ValidateTelemetry(tc TelemetryConfig) error {
	switch tc.Exporter {
	case "", "none", "stdout":
		return nil
	case "otlp":
		if tc.Endpoint == "" {
			return fmt.Errorf("telemetry.endpoint is required when exporter is otlp")
		}
		return nil
	default:
		return fmt.Errorf("unknown telemetry exporter %q (valid: none, stdout, otlp)", tc.Exporter)
	}
}

// ValidateDetect checks detection configuration for errors.
func ValidateDetect(dc DetectConfig) error {
	if dc.CacheTTL < 0 {
		return fmt.Errorf("detect.cache_ttl must not be negative")
	}
	if dc.Debounce < 0 {
		return fmt.Errorf("detect.debounce must not be negative")
	}
	return nil
}

// Validate checks the full configuration for errors.
func (c Config) Validate() error {
	if err := ValidateTelemetry(c.Telemetry); err != nil {
		return err
	}
	return ValidateDetect(c.Detect)
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# ngsteer Configuration

# Write debug-level entries to the log file
debug: false

# Log file location (commands and the MCP server log here, never to stdout)
# log_file: ~/.ngsteer/ngsteer.log

# Steering documents
steering:
  # Directory of user-authored steering documents (.md files).
  # User documents shadow built-ins with the same ID.
  # user_dir: ~/.ngsteer/steering

  # Manual-inclusion documents to always inject, by ID:
  # enabled:
  #   - legacy-refactor

# Version detection
detect:
  cache_ttl: 5m     # how long the MCP server caches per-project detection
  debounce: 500ms   # settle time for --watch mode after a manifest write

# Documentation search index
index:
  # path: ~/.ngsteer/index.db

# Trace export (spans around MCP tool calls and index searches)
telemetry:
  exporter: none    # none | stdout | otlp
  # endpoint: localhost:4317
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
