package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/compat"
	"github.com/zjrosen/ngsteer/internal/index"
	"github.com/zjrosen/ngsteer/internal/log"
	"github.com/zjrosen/ngsteer/internal/project"
	"github.com/zjrosen/ngsteer/internal/ui"
)

var detectAudit bool

var detectCmd = &cobra.Command{
	Use:   "detect [dir]",
	Short: "Detect a project's Angular major version",
	Long: `Read package.json in the given directory (default: current directory)
and report the Angular major version and its compatibility band.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().BoolVar(&detectAudit, "audit", false, "record the result in the detection audit log")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	d, err := project.Detect(dir)
	if err != nil {
		return describeDetectError(dir, err)
	}

	adv := compat.Lookup(d.Major)
	fmt.Printf("Angular %d  %s\n", d.Major, ui.BandStyle.Render("["+adv.Band+"]"))
	fmt.Printf("  declared:  %s (%s)\n", d.Raw, d.Method)
	fmt.Printf("  manifest:  %s\n", ui.SubtleStyle.Render(d.ManifestPath))
	if d.HasWorkspaceConfig {
		fmt.Println("  workspace: angular.json present")
	}
	if adv.Clamped {
		fmt.Printf("  note:      version outside the documented table, using the %s guidance\n", adv.Band)
	}

	if detectAudit {
		if err := recordDetection(dir, d); err != nil {
			log.Warn(log.CatDetect, "recording detection", "error", err.Error())
		}
	}
	return nil
}

// describeDetectError turns detection sentinels into actionable messages.
func describeDetectError(dir string, err error) error {
	switch {
	case errors.Is(err, project.ErrNoManifest):
		return fmt.Errorf("no package.json found in %s", dir)
	case errors.Is(err, project.ErrNotAngular):
		return fmt.Errorf("%s does not depend on @angular/core; not an Angular project", dir)
	default:
		return err
	}
}

func recordDetection(dir string, d project.Detection) error {
	db, err := openIndex()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Store().RecordDetection(index.DetectionRecord{
		ProjectDir: dir,
		Major:      d.Major,
		Method:     d.Method,
		Raw:        d.Raw,
	})
}
