package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/index"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the documentation search index",
	Long:  `Split every steering document into sections and rebuild the SQLite index that backs search and the search_documentation MCP tool.`,
	RunE:  runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	db, err := openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	docs := registry.List()
	if err := index.Reindex(db.Store(), docs); err != nil {
		return fmt.Errorf("rebuilding index: %w", err)
	}

	count, err := db.Store().SectionCount()
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d sections from %d documents into %s\n", count, len(docs), cfg.Index.Path)
	return nil
}
