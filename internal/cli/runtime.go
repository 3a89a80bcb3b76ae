package cli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ternary/smartcontext/internal/clock"
	"github.com/ternary/smartcontext/internal/config"
	"github.com/ternary/smartcontext/internal/embedding/mcpembedder"
	"github.com/ternary/smartcontext/internal/embedding/wasmembedder"
	"github.com/ternary/smartcontext/internal/engine"
	"github.com/ternary/smartcontext/internal/modelmeta"
	"github.com/ternary/smartcontext/internal/pipeline"
	"github.com/ternary/smartcontext/internal/scanner"
	"github.com/ternary/smartcontext/internal/tokenizer"
)

// embedderHandle bundles a constructed Embedder with the teardown its
// backend requires, if any.
type embedderHandle struct {
	embedder pipeline.Embedder
	closer   func() error
}

// buildEngine wires an Engine from resolved settings: scanner, tokenizer,
// model metadata table, system clock, OS filesystem, and whichever
// embedder backend settings.Embedder names. The returned closer must be
// called once the engine is no longer needed to release embedder
// resources.
func buildEngine(ctx context.Context, settings *config.Settings) (*engine.Engine, func() error, error) {
	estimator, err := tokenizer.New(settings.Tokenizer)
	if err != nil {
		return nil, nil, fmt.Errorf("constructing tokenizer %q: %w", settings.Tokenizer, err)
	}

	handle, err := buildEmbedder(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	deps := engine.Deps{
		Scanner:       scanner.New(scanner.Options{}),
		Estimator:     estimator,
		ModelMeta:     modelmeta.Table{},
		Embedder:      handle.embedder,
		Clock:         clock.System{},
		FS:            pipeline.NewOSFilesystem(),
		CacheDir:      settings.CacheDir,
		MaxCacheAgeMS: settings.MaxCacheAgeMS,
	}

	return engine.New(deps), handle.closer, nil
}

// buildEmbedder constructs the pipeline.Embedder named by
// settings.Embedder. An unrecognized or empty value, or "none", yields a
// nil Embedder, which routes the engine straight to the TF-IDF path.
func buildEmbedder(ctx context.Context, settings *config.Settings) (embedderHandle, error) {
	switch settings.Embedder {
	case "mcp":
		fields := strings.Fields(settings.MCPCommand)
		if len(fields) == 0 {
			return embedderHandle{}, fmt.Errorf("embedder=mcp requires --mcp-command")
		}
		cmd := exec.Command(fields[0], fields[1:]...)
		e, err := mcpembedder.Connect(ctx, &mcp.CommandTransport{Command: cmd})
		if err != nil {
			return embedderHandle{}, fmt.Errorf("connecting to mcp embedder: %w", err)
		}
		return embedderHandle{embedder: e, closer: e.Close}, nil

	case "wasm":
		if settings.WASMModelPath == "" {
			return embedderHandle{}, fmt.Errorf("embedder=wasm requires --wasm-model-path")
		}
		e, err := wasmembedder.Load(ctx, settings.WASMModelPath)
		if err != nil {
			return embedderHandle{}, fmt.Errorf("loading wasm embedder: %w", err)
		}
		return embedderHandle{embedder: e, closer: func() error { return e.Close(context.Background()) }}, nil

	default:
		return embedderHandle{embedder: nil, closer: func() error { return nil }}, nil
	}
}
