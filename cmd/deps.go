package cmd

import (
	"fmt"

	"github.com/zjrosen/ngsteer/internal/index"
	steeringapp "github.com/zjrosen/ngsteer/internal/steering/application"
	"github.com/zjrosen/ngsteer/steeringdocs"
)

// buildRegistry loads built-in and user steering documents per the active
// configuration.
func buildRegistry() (*steeringapp.Registry, error) {
	reg, err := steeringapp.NewRegistry(steeringapp.RegistryOptions{
		BuiltinFS:  steeringdocs.DocsFS(),
		BuiltinDir: steeringdocs.Dir,
		UserDir:    cfg.Steering.UserDir,
		Enabled:    cfg.Steering.Enabled,
	})
	if err != nil {
		return nil, fmt.Errorf("loading steering documents: %w", err)
	}
	return reg, nil
}

// openIndex opens (and migrates) the documentation index database.
func openIndex() (*index.DB, error) {
	db, err := index.NewDB(cfg.Index.Path)
	if err != nil {
		return nil, fmt.Errorf("opening index at %s: %w", cfg.Index.Path, err)
	}
	return db, nil
}
