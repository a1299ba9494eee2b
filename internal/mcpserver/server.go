// Package mcpserver exposes schema flattening as MCP (Model Context Protocol)
// tools so assistants can inspect the field layout of an OpenAPI document.
package mcpserver

import (
	"context"
	"errors"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/goliatone/go-schemaflat/pkg/flatten"
	"github.com/goliatone/go-schemaflat/pkg/orchestrator"
)

const (
	serverName    = "schemaflat"
	defaultLimit  = 100
	maxLimit      = 1000
	serverVersion = "dev"
)

const serverInstructions = `schemaflat MCP server: flattens OpenAPI component schemas into field records.

Every record carries a dotted model path, its parent path, a hierarchical sort key (1, 1.2, 1.2.1), the field type and the names of its children. Use list_schemas to discover root candidates, flatten_schema to get every record of one root, and query_fields to filter and page through records of large schemas.`

// Server wires the orchestrator into an MCP server.
type Server struct {
	orch    *orchestrator.Orchestrator
	logger  *zap.Logger
	limit   int
	version string
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultLimit sets the page size used by query_fields when the caller
// does not pass one.
func WithDefaultLimit(limit int) Option {
	return func(s *Server) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithVersion sets the version advertised to clients.
func WithVersion(version string) Option {
	return func(s *Server) {
		if version != "" {
			s.version = version
		}
	}
}

// New builds a Server around orch. A nil orchestrator gets the defaults.
func New(orch *orchestrator.Orchestrator, options ...Option) *Server {
	if orch == nil {
		orch = orchestrator.New()
	}
	s := &Server{
		orch:    orch,
		logger:  zap.NewNop(),
		limit:   defaultLimit,
		version: serverVersion,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// MCPServer returns an MCP server with every tool registered.
func (s *Server) MCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: s.version},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	s.registerTools(server)
	return server
}

// Run serves the tools over transport and blocks until the client disconnects
// or ctx is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if transport == nil {
		return errors.New("mcpserver: transport is required")
	}
	s.logger.Info("starting MCP server", zap.String("version", s.version))
	return s.MCPServer().Run(ctx, transport)
}

func (s *Server) registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_schemas",
		Description: "List the named schemas of an OpenAPI document in declaration order, with their type and property count. Use it to pick a root for flatten_schema or query_fields.",
	}, s.handleListSchemas)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "flatten_schema",
		Description: "Flatten one root schema of an OpenAPI document into field records (field, model path, parent path, sort key, type, required, child names, metadata). References, arrays and oneOf/anyOf unions are expanded; cycles stop at the first repeated schema. An empty root selects the first schema. Set strict=true to fail on unresolved references instead of skipping them.",
	}, s.handleFlatten)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_fields",
		Description: "Flatten a root schema and filter its records. field, type, required and enum match as case-insensitive substrings (required matches 'true required yes' or 'false optional no'); model and parent must match exactly. Use offset/limit to page through large results.",
	}, s.handleQuery)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to the server limit.
func (s *Server) paginate(items []flatten.Record, offset, limit int) []flatten.Record {
	if limit <= 0 {
		limit = s.limit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 || offset >= len(items) {
		return []flatten.Record{}
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// pathPattern strips absolute filesystem paths from error messages so they
// do not leak the server's directory layout to clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
