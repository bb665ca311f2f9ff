package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default config file and user steering directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := filepath.Join(config.DataDir(), "config.yaml")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := config.WriteDefaultConfig(configPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", configPath)

	userDir := config.Defaults().Steering.UserDir
	if err := os.MkdirAll(userDir, 0750); err != nil {
		return fmt.Errorf("creating user steering directory: %w", err)
	}
	fmt.Printf("User steering documents go in %s\n", userDir)
	return nil
}
