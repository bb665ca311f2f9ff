package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	steering "github.com/zjrosen/ngsteer/internal/steering/domain"
	"github.com/zjrosen/ngsteer/internal/ui"
)

var steeringCmd = &cobra.Command{
	Use:   "steering",
	Short: "List available steering documents",
	Long:  `Display all steering documents, including built-in and user-defined documents, with their inclusion mode.`,
	RunE:  runSteering,
}

func init() {
	rootCmd.AddCommand(steeringCmd)
}

func runSteering(cmd *cobra.Command, args []string) error {
	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	builtinDocs := registry.ListBySource(steering.SourceBuiltIn)
	userDocs := registry.ListBySource(steering.SourceUser)

	fmt.Println(ui.HeadingStyle.Render("Built-in Documents:"))
	printDocs(registry, builtinDocs)

	fmt.Println()
	fmt.Printf("%s (%s):\n", ui.HeadingStyle.Render("User Documents"), cfg.Steering.UserDir)
	printDocs(registry, userDocs)

	if m, ok := registry.Manifest(); ok {
		fmt.Println()
		fmt.Printf("Power: %s (%s)\n", m.DisplayName, m.Description)
	}

	fmt.Println()
	fmt.Println("Show a document with: ngsteer show <id>")
	return nil
}

func printDocs(registry interface{ Enabled(string) bool }, docs []steering.Document) {
	if len(docs) == 0 {
		fmt.Println("  (none)")
		return
	}

	maxLen := maxIDLen(docs)
	for _, doc := range docs {
		mode := string(doc.Inclusion)
		if doc.Inclusion == steering.InclusionManual && registry.Enabled(doc.ID) {
			mode = "manual, enabled"
		}
		fmt.Printf("  %-*s  %-16s %s\n", maxLen, doc.ID, "("+mode+")",
			ui.Truncate(doc.Description, 70))
	}
}

// maxIDLen returns the length of the longest document ID in the slice.
func maxIDLen(docs []steering.Document) int {
	maxLen := 0
	for _, doc := range docs {
		if len(doc.ID) > maxLen {
			maxLen = len(doc.ID)
		}
	}
	return maxLen
}
