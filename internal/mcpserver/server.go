// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes oasfixture capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasfixture"
	"github.com/erraggy/oasfixture/internal/issues"
)

const serverInstructions = `oasfixture MCP server: maps OpenAPI schemas to Go client types, renders values as Go literals, assembles call arguments, synthesizes fixture values and generates example programs.

Configuration: All defaults are configurable via OASFIXTURE_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OASFIXTURE_CLIENT_PACKAGE (default: datadog): client package qualifying Nullable wrappers and Ptr helpers
- OASFIXTURE_API_VERSION (default: v1): versioned model package, e.g. datadogV1
- OASFIXTURE_STRICT (default: false): turn rendering warnings into errors
- OASFIXTURE_CACHE_ENABLED (default: true): disable document caching entirely
- OASFIXTURE_CACHE_FILE_TTL (default: 15m): cache TTL for local file documents
- OASFIXTURE_MAX_INLINE_SIZE (default: 10MiB): maximum inline document size

Targets: Tools that work on a single schema accept a target naming a component schema, or an operation with a parameter (use "body" for the request body) or a response status.

Caching: Loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.Cache.Enabled {
		docCache.startSweeper(ctx, cfg.Cache.SweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasfixture", Version: oasfixture.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "map_type",
		Description: "Map a schema to the Go type name the generated client uses for it. Named objects and enums become prefixed model names, arrays become slices, maps become map[string]T, nullable primitives become Nullable wrappers when nullable=true. Use constructor=true to get the NewNullable constructor name instead of the wrapper type.",
	}, handleMapType)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_literal",
		Description: "Render a JSON value as a Go literal of the target schema's type. Objects become composite literals with pointer helpers for optional fields, enums become constant names, oneOf values are matched to exactly one alternative. Returns the literal and any warnings. Strict mode is configurable via OASFIXTURE_STRICT.",
	}, handleRenderLiteral)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assemble_parameters",
		Description: "Assemble the Go argument list for calling an operation. Required parameters come first in declaration order; optional parameters are collected into the options builder. Arguments are keyed by parameter name; use \"body\" for a JSON request body.",
	}, handleAssembleParameters)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "synthesize_fixture",
		Description: "Generate a deterministic fixture value for a schema, or a seeded random one with random=true. Use path to read a nested value; each given value is recorded under a placeholder key derived from the given key and the path.",
	}, handleSynthesizeFixture)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_example",
		Description: "Generate a runnable Go example program from a scenario (YAML or JSON) naming an operation, given fixtures, a templated request body and parameters. Returns the program, its file name and group, the environment variables it reads, and warnings. Scenarios documenting a non-success status are skipped.",
	}, handleGenerateExample)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
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

// issueOutput is the wire form of a recorded issue.
type issueOutput struct {
	Severity  string `json:"severity"`
	Path      string `json:"path,omitempty"`
	Message   string `json:"message"`
	Context   string `json:"context,omitempty"`
	Operation string `json:"operation,omitempty"`
}

func makeIssues(in []issues.Issue) []issueOutput {
	out := makeSlice[issueOutput](len(in))
	for _, i := range in {
		o := issueOutput{
			Severity:  i.Severity.String(),
			Path:      i.Path,
			Message:   i.Message,
			Context:   i.Context,
			Operation: i.Operation,
		}
		if i.Value != nil && o.Context == "" {
			o.Context = fmt.Sprintf("value: %v", i.Value)
		}
		out = append(out, o)
	}
	return out
}
