// Package mcp implements the ngsteer MCP server: a JSON-RPC 2.0 stdio
// server exposing the steering registry, the version detector, and the
// documentation index as MCP tools an assistant can call.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/zjrosen/ngsteer/internal/index"
	"github.com/zjrosen/ngsteer/internal/log"
	steeringapp "github.com/zjrosen/ngsteer/internal/steering/application"
	"github.com/zjrosen/ngsteer/internal/telemetry"
)

// protocolVersion is the MCP protocol revision this server speaks.
const protocolVersion = "2024-11-05"

// serverVersion is reported in the initialize handshake.
const serverVersion = "0.1.0"

// Property describes one field of a tool's input schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Schema is a JSON-schema object descriptor for tool input.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties,omitempty"`
	Required   []string            `json:"required,omitempty"`
}

// Tool describes one callable MCP tool.
type Tool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	InputSchema *Schema `json:"inputSchema"`
}

// HandlerFunc executes a tool call. The returned string is delivered to the
// client as text content; an error becomes an isError tool result.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (string, error)

// Options configures a Server.
type Options struct {
	// Registry serves steering document lookups. Required.
	Registry *steeringapp.Registry

	// Store backs search_documentation and the detection audit.
	// Optional: without it, search reports the index as unavailable.
	Store *index.Store

	// CacheTTL bounds how long detect_version results are reused per
	// project directory.
	CacheTTL time.Duration
}

// Server is the ngsteer MCP server.
type Server struct {
	registry *steeringapp.Registry
	store    *index.Store

	tools    map[string]Tool
	handlers map[string]HandlerFunc

	detections *gocache.Cache

	mu sync.Mutex // serializes writes to the response stream
	w  io.Writer
}

// NewServer creates a server and registers all tools.
func NewServer(opts Options) *Server {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	s := &Server{
		registry:   opts.Registry,
		store:      opts.Store,
		tools:      make(map[string]Tool),
		handlers:   make(map[string]HandlerFunc),
		detections: gocache.New(ttl, 2*ttl),
	}
	s.registerTools()
	return s
}

// registerTool adds a tool and its handler.
func (s *Server) registerTool(tool Tool, handler HandlerFunc) {
	s.tools[tool.Name] = tool
	s.handlers[tool.Name] = handler
}

// request is an incoming JSON-RPC 2.0 message.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// response is an outgoing JSON-RPC 2.0 message. The id member is always
// present; a nil RawMessage marshals as the null id required when the
// request id could not be read.
type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError is a JSON-RPC 2.0 error object.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Serve reads newline-delimited JSON-RPC requests from r and writes
// responses to w until EOF or context cancellation. Malformed input
// produces error responses, never a crash.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	s.w = w
	log.Info(log.CatMCP, "mcp server started")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeError(nil, codeParseError, "parse error")
			continue
		}
		s.dispatch(ctx, req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading mcp stream: %w", err)
	}
	log.Info(log.CatMCP, "mcp server stopped")
	return nil
}

// dispatch routes a single request to its method handler.
func (s *Server) dispatch(ctx context.Context, req request) {
	switch req.Method {
	case "initialize":
		s.writeResult(req.ID, map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    "ngsteer",
				"version": serverVersion,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		})
	case "notifications/initialized":
		// Notification: no response.
	case "ping":
		s.writeResult(req.ID, map[string]any{})
	case "tools/list":
		s.writeResult(req.ID, map[string]any{"tools": s.listTools()})
	case "tools/call":
		s.handleToolCall(ctx, req)
	default:
		if req.ID == nil {
			// Unknown notification: ignore per JSON-RPC.
			return
		}
		s.writeError(req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
	}
}

// listTools returns tools in a stable order.
func (s *Server) listTools() []Tool {
	names := make([]string, 0, len(s.tools))
	for name := range s.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, s.tools[name])
	}
	return tools
}

// toolCallParams is the params shape of tools/call.
type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolCall executes a tool and returns its content. Tool errors are
// reported as isError results per MCP; protocol errors (unknown tool, bad
// params) are JSON-RPC errors.
func (s *Server) handleToolCall(ctx context.Context, req request) {
	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		s.writeError(req.ID, codeInvalidParams, "invalid tools/call params")
		return
	}

	handler, ok := s.handlers[params.Name]
	if !ok {
		s.writeError(req.ID, codeInvalidParams, fmt.Sprintf("unknown tool %q", params.Name))
		return
	}

	ctx, span := telemetry.Tracer().Start(ctx, "mcp.tool_call")
	span.SetAttributes(attribute.String("tool.name", params.Name))
	defer span.End()

	text, err := handler(ctx, params.Arguments)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.Warn(log.CatMCP, "tool call failed", "tool", params.Name, "error", err.Error())
		s.writeResult(req.ID, toolResult(err.Error(), true))
		return
	}

	s.writeResult(req.ID, toolResult(text, false))
}

// toolResult builds an MCP tool result with a single text content item.
func toolResult(text string, isError bool) map[string]any {
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": text},
		},
		"isError": isError,
	}
}

func (s *Server) writeResult(id json.RawMessage, result any) {
	s.write(response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(id json.RawMessage, code int, msg string) {
	s.write(response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}})
}

func (s *Server) write(resp response) {
	data, err := json.Marshal(resp)
	if err != nil {
		log.ErrorErr(log.CatMCP, "marshaling response", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(append(data, '\n')); err != nil {
		log.ErrorErr(log.CatMCP, "writing response", err)
	}
}
