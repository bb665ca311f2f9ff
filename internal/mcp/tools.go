package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/ngsteer/internal/compat"
	"github.com/zjrosen/ngsteer/internal/index"
	"github.com/zjrosen/ngsteer/internal/log"
	"github.com/zjrosen/ngsteer/internal/project"
	"github.com/zjrosen/ngsteer/internal/telemetry"
)

// registerTools wires up the tool surface the steering documents tell
// assistants to use.
func (s *Server) registerTools() {
	s.registerTool(Tool{
		Name:        "search_documentation",
		Description: "Search the indexed steering documentation for sections matching a query.",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]Property{
				"query": {Type: "string", Description: "Search terms; all must match."},
				"limit": {Type: "integer", Description: "Maximum results (default 10)."},
			},
			Required: []string{"query"},
		},
	}, s.handleSearchDocumentation)

	s.registerTool(Tool{
		Name:        "get_best_practices",
		Description: "Return version-appropriate Angular guidance: the feature advisory for a major version plus the steering documents that apply.",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]Property{
				"version":     {Type: "integer", Description: "Angular major version. Omit to detect from project_dir."},
				"project_dir": {Type: "string", Description: "Project directory to detect the version from when version is omitted."},
			},
		},
	}, s.handleGetBestPractices)

	s.registerTool(Tool{
		Name:        "detect_version",
		Description: "Detect a project's Angular major version from its package.json.",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]Property{
				"project_dir": {Type: "string", Description: "Directory containing package.json."},
			},
			Required: []string{"project_dir"},
		},
	}, s.handleDetectVersion)

	s.registerTool(Tool{
		Name:        "detection_history",
		Description: "List recent version detections from the audit log, newest first.",
		InputSchema: &Schema{
			Type: "object",
			Properties: map[string]Property{
				"project_dir": {Type: "string", Description: "Only show detections for this directory. Omit for all projects."},
				"limit":       {Type: "integer", Description: "Maximum records (default 20)."},
			},
		},
	}, s.handleDetectionHistory)

	s.registerTool(Tool{
		Name:        "list_steering",
		Description: "List available steering documents with their inclusion mode and origin.",
		InputSchema: &Schema{
			Type: "object",
		},
	}, s.handleListSteering)
}

type searchArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

func (s *Server) handleSearchDocumentation(ctx context.Context, raw json.RawMessage) (string, error) {
	var args searchArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}
	if strings.TrimSpace(args.Query) == "" {
		return "", fmt.Errorf("query is required")
	}
	if s.store == nil {
		return "", fmt.Errorf("documentation index unavailable; run `ngsteer reindex` first")
	}

	_, span := telemetry.Tracer().Start(ctx, "mcp.search",
		trace.WithAttributes(attribute.String("search.query", args.Query)))
	defer span.End()

	results, err := s.store.Search(args.Query, args.Limit)
	if err != nil {
		return "", fmt.Errorf("searching documentation: %w", err)
	}
	if len(results) == 0 {
		return "No documentation sections matched.", nil
	}

	var b strings.Builder
	for _, res := range results {
		fmt.Fprintf(&b, "[%s] %s\n%s\n\n", res.DocID, res.Heading, res.Snippet)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type bestPracticesArgs struct {
	Version    *int   `json:"version"`
	ProjectDir string `json:"project_dir"`
}

func (s *Server) handleGetBestPractices(ctx context.Context, raw json.RawMessage) (string, error) {
	var args bestPracticesArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}

	var major int
	switch {
	case args.Version != nil:
		major = *args.Version
	case args.ProjectDir != "":
		d, err := s.cachedDetect(args.ProjectDir)
		if err != nil {
			return "", err
		}
		major = d.Major
	default:
		return "", fmt.Errorf("either version or project_dir is required")
	}

	adv := compat.Lookup(major)

	var b strings.Builder
	fmt.Fprintf(&b, "Angular %d (band %s)\n\n", major, adv.Band)
	for _, f := range compat.AllFeatures() {
		fmt.Fprintf(&b, "- %s: %s\n", f, adv.Status(f))
	}
	fmt.Fprintf(&b, "\n%s\n", adv.Text)

	for _, doc := range s.registry.ContextDocuments() {
		fmt.Fprintf(&b, "\n---\n\n%s\n", strings.TrimSpace(doc.Content))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type detectArgs struct {
	ProjectDir string `json:"project_dir"`
}

func (s *Server) handleDetectVersion(_ context.Context, raw json.RawMessage) (string, error) {
	var args detectArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}
	if args.ProjectDir == "" {
		return "", fmt.Errorf("project_dir is required")
	}

	d, err := s.cachedDetect(args.ProjectDir)
	if err != nil {
		return "", err
	}

	adv := compat.Lookup(d.Major)
	out, err := json.MarshalIndent(map[string]any{
		"major":           d.Major,
		"declared_range":  d.Raw,
		"found_in":        d.Method,
		"band":            adv.Band,
		"cli_workspace":   d.HasWorkspaceConfig,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type historyArgs struct {
	ProjectDir string `json:"project_dir"`
	Limit      int    `json:"limit"`
}

func (s *Server) handleDetectionHistory(_ context.Context, raw json.RawMessage) (string, error) {
	var args historyArgs
	if err := unmarshalArgs(raw, &args); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", fmt.Errorf("detection audit unavailable; no index database is open")
	}

	// Detections are recorded under absolute paths.
	dir := args.ProjectDir
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	records, err := s.store.RecentDetections(dir, args.Limit)
	if err != nil {
		return "", fmt.Errorf("reading detection history: %w", err)
	}
	if len(records) == 0 {
		return "No detections recorded.", nil
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s\tAngular %d\t%s (%s)\t%s\n",
			rec.DetectedAt.Format(time.RFC3339), rec.Major, rec.Raw, rec.Method, rec.ProjectDir)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (s *Server) handleListSteering(_ context.Context, raw json.RawMessage) (string, error) {
	var b strings.Builder
	for _, doc := range s.registry.List() {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", doc.ID, doc.Inclusion, doc.Source, doc.Description)
	}
	if b.Len() == 0 {
		return "No steering documents loaded.", nil
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// cachedDetect runs version detection with a per-directory TTL cache.
// Detection reads the filesystem on every call otherwise, and assistants
// tend to call the tool repeatedly within one session.
func (s *Server) cachedDetect(dir string) (project.Detection, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		key = dir
	}

	if cached, ok := s.detections.Get(key); ok {
		return cached.(project.Detection), nil
	}

	d, err := project.Detect(dir)
	if err != nil {
		return project.Detection{}, err
	}
	s.detections.SetDefault(key, d)

	if s.store != nil {
		if err := s.store.RecordDetection(index.DetectionRecord{
			ProjectDir: key,
			Major:      d.Major,
			Method:     d.Method,
			Raw:        d.Raw,
		}); err != nil {
			log.Warn(log.CatMCP, "recording detection audit", "error", err.Error())
		}
	}
	return d, nil
}

// unmarshalArgs decodes tool arguments, treating absent arguments as empty.
func unmarshalArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
