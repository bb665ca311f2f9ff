package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/compat"
	"github.com/zjrosen/ngsteer/internal/log"
	"github.com/zjrosen/ngsteer/internal/project"
	"github.com/zjrosen/ngsteer/internal/ui"
)

var (
	adviseVersion int
	adviseWatch   bool
)

var adviseCmd = &cobra.Command{
	Use:   "advise [dir]",
	Short: "Show version-appropriate feature guidance for a project",
	Long: `Detect the project's Angular version and print which modern patterns
(standalone components, inject(), built-in control flow, signals) apply,
with the advisory for that version band.

With --watch, keep running and re-print the advisory whenever package.json
changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().IntVar(&adviseVersion, "version", 0, "advise for this major version instead of detecting")
	adviseCmd.Flags().BoolVar(&adviseWatch, "watch", false, "re-run when package.json changes")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	if cmd.Flags().Changed("version") {
		printAdvisory(compat.Lookup(adviseVersion))
		return nil
	}

	d, err := project.Detect(dir)
	if err != nil {
		return describeDetectError(dir, err)
	}
	fmt.Printf("Detected Angular %d from %s\n\n", d.Major, ui.SubtleStyle.Render(d.ManifestPath))
	printAdvisory(compat.Lookup(d.Major))

	if !adviseWatch {
		return nil
	}
	return watchAdvise(dir)
}

func printAdvisory(adv compat.Advisory) {
	fmt.Printf("%s %s\n\n", ui.HeadingStyle.Render("Version band"), ui.BandStyle.Render(adv.Band))
	for _, f := range compat.AllFeatures() {
		fmt.Printf("  %-14s %s\n", string(f), ui.StatusBadge(adv.Status(f)))
	}
	fmt.Println()
	fmt.Println(ui.Wrap(adv.Text, ui.DefaultWidth))
	if adv.Clamped {
		fmt.Println()
		fmt.Printf("Version %d is outside the documented table; showing the %s guidance.\n",
			adv.Version, adv.Band)
	}
}

// watchAdvise blocks, re-printing the advisory on manifest changes, until
// interrupted.
func watchAdvise(dir string) error {
	w, err := project.NewWatcher(project.WatcherConfig{
		Dir:      dir,
		Debounce: cfg.Detect.Debounce,
		OnChange: func(d project.Detection) {
			fmt.Printf("\npackage.json changed: Angular %d\n\n", d.Major)
			printAdvisory(compat.Lookup(d.Major))
		},
		OnError: func(err error) {
			log.Warn(log.CatDetect, "watch detection failed", "error", err.Error())
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		},
	})
	if err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w.Start(ctx)
	fmt.Println("\nWatching package.json for changes (Ctrl+C to stop)...")
	<-ctx.Done()
	return nil
}
