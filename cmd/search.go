package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/ui"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Search the indexed steering documentation",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	db, err := openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	count, err := db.Store().SectionCount()
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("index is empty; run `ngsteer reindex` first")
	}

	query := strings.Join(args, " ")
	results, err := db.Store().Search(query, searchLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No sections matched.")
		return nil
	}

	for _, res := range results {
		fmt.Printf("%s %s\n", ui.HeadingStyle.Render(res.Heading), ui.SubtleStyle.Render("("+res.DocID+")"))
		fmt.Printf("  %s\n\n", ui.Truncate(res.Snippet, ui.DefaultWidth))
	}
	return nil
}
