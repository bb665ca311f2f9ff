package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/ui"
)

var showRaw bool

var showCmd = &cobra.Command{
	Use:   "show <doc-id>",
	Short: "Render a steering document",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showRaw, "raw", false, "print the document body without terminal rendering")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	doc, ok := registry.Get(args[0])
	if !ok {
		return fmt.Errorf("no steering document %q (see: ngsteer steering)", args[0])
	}

	if showRaw {
		fmt.Println(doc.Content)
		return nil
	}

	rendered, err := ui.Markdown(doc.Content, ui.DefaultWidth)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", doc.ID, err)
	}
	fmt.Print(rendered)
	return nil
}
