package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/compat"
	"github.com/zjrosen/ngsteer/internal/refactor"
	"github.com/zjrosen/ngsteer/internal/ui"
)

var (
	examplesFeature string
	examplesDiff    bool
)

var examplesCmd = &cobra.Command{
	Use:   "examples [example-id]",
	Short: "List or show before/after migration examples",
	Long: `Migration examples are extracted from steering documents. Without an
argument, list all examples; with an example ID, print its before and
after snippets (or a unified diff with --diff).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExamples,
}

func init() {
	examplesCmd.Flags().StringVar(&examplesFeature, "feature", "", "only list examples for this feature")
	examplesCmd.Flags().BoolVar(&examplesDiff, "diff", false, "show the change as a diff instead of full snippets")
	rootCmd.AddCommand(examplesCmd)
}

func runExamples(cmd *cobra.Command, args []string) error {
	examples, err := loadExamples()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		return showExample(examples, args[0])
	}

	if examplesFeature != "" {
		filtered := examples[:0]
		for _, ex := range examples {
			if ex.Feature == examplesFeature {
				filtered = append(filtered, ex)
			}
		}
		examples = filtered
	}

	if len(examples) == 0 {
		fmt.Println("No migration examples found.")
		return nil
	}

	maxLen := 0
	for _, ex := range examples {
		if len(ex.ID) > maxLen {
			maxLen = len(ex.ID)
		}
	}
	for _, ex := range examples {
		fmt.Printf("  %-*s  %-14s %s\n", maxLen, ex.ID, ex.Feature, ex.Title)
	}
	return nil
}

func showExample(examples []refactor.Example, id string) error {
	for _, ex := range examples {
		if ex.ID != id {
			continue
		}

		fmt.Printf("%s (%s)\n\n", ui.HeadingStyle.Render(ex.Title), ex.Feature)
		if examplesDiff {
			fmt.Println(ex.Diff())
			return nil
		}
		fmt.Println(ui.HeadingStyle.Render("Before:"))
		fmt.Printf("```%s\n%s\n```\n\n", ex.Lang, ex.Before)
		fmt.Println(ui.HeadingStyle.Render("After:"))
		fmt.Printf("```%s\n%s\n```\n", ex.Lang, ex.After)
		return nil
	}
	return fmt.Errorf("no example %q (see: ngsteer examples)", id)
}

// loadExamples extracts examples from every steering document that carries
// feature-tagged before/after sections.
func loadExamples() ([]refactor.Example, error) {
	registry, err := buildRegistry()
	if err != nil {
		return nil, err
	}

	var all []refactor.Example
	for _, doc := range registry.List() {
		all = append(all, refactor.Extract(doc.Content)...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Feature != all[j].Feature {
			return all[i].Feature < all[j].Feature
		}
		return all[i].ID < all[j].ID
	})

	for i := range all {
		if !isKnownFeature(all[i].Feature) {
			return nil, fmt.Errorf("example %s names unknown feature %q", all[i].ID, all[i].Feature)
		}
	}
	return all, nil
}

func isKnownFeature(f string) bool {
	for _, known := range compat.AllFeatures() {
		if f == string(known) {
			return true
		}
	}
	return false
}
