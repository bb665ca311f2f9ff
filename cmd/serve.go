package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/ngsteer/internal/log"
	"github.com/zjrosen/ngsteer/internal/mcp"
	"github.com/zjrosen/ngsteer/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Serve the MCP tool surface (search_documentation, get_best_practices,
detect_version, detection_history, list_steering) as newline-delimited
JSON-RPC on stdin and stdout. All diagnostics go to the log file; stdout
carries only protocol responses.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry setup: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatMCP, "telemetry shutdown", err)
		}
	}()

	registry, err := buildRegistry()
	if err != nil {
		return err
	}

	server := mcp.Options{
		Registry: registry,
		CacheTTL: cfg.Detect.CacheTTL,
	}

	// The index is optional for serving: without it, search_documentation
	// reports itself unavailable but every other tool works.
	db, err := openIndex()
	if err != nil {
		log.Warn(log.CatMCP, "serving without documentation index", "error", err.Error())
	} else {
		defer func() { _ = db.Close() }()
		server.Store = db.Store()
	}

	return mcp.NewServer(server).Serve(ctx, os.Stdin, os.Stdout)
}
