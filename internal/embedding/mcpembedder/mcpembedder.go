// Package mcpembedder implements pipeline.Embedder on top of a Model
// Context Protocol server exposing a single "embed" tool. This lets an
// operator point the Smart Context Selector at any MCP-compliant embedding
// provider (local or remote) without the core depending on a specific
// vendor SDK.
package mcpembedder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolName is the MCP tool this embedder invokes on the connected server.
// The tool is expected to accept {"text": string} and return a single text
// content block holding a JSON array of float32 values.
const ToolName = "embed"

// Embedder is an MCP-backed pipeline.Embedder. A single Embedder owns one
// client session and serializes calls through it; the underlying
// mcp.ClientSession is not assumed to be safe for concurrent use.
type Embedder struct {
	session *mcp.ClientSession
	logger  *slog.Logger

	mu sync.Mutex
}

// Connect dials an MCP server over transport and returns an Embedder bound
// to the resulting session. The caller owns the session's lifetime and
// should call Close when done.
func Connect(ctx context.Context, transport mcp.Transport) (*Embedder, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "smartctx",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("connecting to embedding MCP server: %w", err)
	}

	return &Embedder{
		session: session,
		logger:  slog.Default().With("component", "mcp_embedder"),
	}, nil
}

// Available reports whether a live session is attached. An Embedder
// obtained via Connect is always available; Available exists so callers
// can hold a possibly-nil *Embedder behind the pipeline.Embedder interface
// uniformly with the other backends.
func (e *Embedder) Available() bool {
	return e != nil && e.session != nil
}

// Embed calls the server's embed tool with text and parses the returned
// text content as a JSON float32 array.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := e.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: map[string]any{"text": text},
	})
	if err != nil {
		return nil, fmt.Errorf("calling %s tool: %w", ToolName, err)
	}
	if result.IsError {
		return nil, fmt.Errorf("%s tool reported an error", ToolName)
	}

	for _, content := range result.Content {
		tc, ok := content.(*mcp.TextContent)
		if !ok {
			continue
		}
		var vec []float32
		if err := json.Unmarshal([]byte(tc.Text), &vec); err != nil {
			return nil, fmt.Errorf("decoding embedding vector: %w", err)
		}
		return vec, nil
	}

	return nil, fmt.Errorf("%s tool returned no text content", ToolName)
}

// Close terminates the underlying MCP session.
func (e *Embedder) Close() error {
	if e == nil || e.session == nil {
		return nil
	}
	return e.session.Close()
}
