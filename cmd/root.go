// Package cmd implements the ngsteer command-line interface.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/ngsteer/internal/config"
	"github.com/zjrosen/ngsteer/internal/log"
)

var (
	cfg      config.Config
	cfgFile  string
	cfgDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "ngsteer",
	Short: "Version-aware Angular steering for AI coding assistants",
	Long: `ngsteer detects a project's Angular major version, maps it to the
feature-compatibility table, and serves steering documents and migration
examples over the CLI or an MCP stdio server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		return log.Init(cfg.LogFile, cfg.Debug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("config file (default %s)", filepath.Join(config.DataDir(), "config.yaml")))
	rootCmd.PersistentFlags().BoolVar(&cfgDebug, "debug", false, "write debug-level log entries")
}

// loadConfig merges defaults, the config file, NGSTEER_* environment
// variables, and flags into cfg.
func loadConfig() error {
	v := viper.New()
	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(config.DataDir())
	}

	v.SetEnvPrefix("NGSTEER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := config.Defaults()
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("steering.user_dir", defaults.Steering.UserDir)
	v.SetDefault("detect.cache_ttl", defaults.Detect.CacheTTL)
	v.SetDefault("detect.debounce", defaults.Detect.Debounce)
	v.SetDefault("index.path", defaults.Index.Path)
	v.SetDefault("telemetry.exporter", defaults.Telemetry.Exporter)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		// Missing default config file: run on defaults.
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if cfgDebug {
		cfg.Debug = true
	}
	return cfg.Validate()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
