// Package wasmembedder implements pipeline.Embedder by running a WASM
// embedding model entirely offline via wazero, with no process spawning and
// no network calls. It is the embedder of choice when the host cannot reach
// any external provider.
//
// The module contract is minimal, favoring portability over richness: an
// exported function `embed` that takes a pointer and length into the
// module's linear memory (UTF-8 text) and returns a packed pointer/length
// pair addressing a little-endian float32 array, plus `alloc`/`dealloc`
// for the caller to manage that memory.
package wasmembedder

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// Embedder runs a single instantiated WASM embedding module. It is safe for
// concurrent Embed calls only in the sense that calls are serialized
// internally; wazero module instances are not assumed to be reentrant.
type Embedder struct {
	runtime  wazero.Runtime
	module   api.Module
	alloc    api.Function
	dealloc  api.Function
	embedFn  api.Function
	logger   *slog.Logger
	mu       sync.Mutex
}

// Load compiles and instantiates the WASM module at wasmPath. The returned
// Embedder owns the wazero runtime and must be closed by the caller.
func Load(ctx context.Context, wasmPath string) (*Embedder, error) {
	code, err := os.ReadFile(wasmPath)
	if err != nil {
		return nil, fmt.Errorf("reading wasm module %s: %w", wasmPath, err)
	}

	rt := wazero.NewRuntime(ctx)

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiating wasi: %w", err)
	}

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("compiling wasm module %s: %w", wasmPath, err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("smartctx-embedder"))
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiating wasm module %s: %w", wasmPath, err)
	}

	alloc := mod.ExportedFunction("alloc")
	dealloc := mod.ExportedFunction("dealloc")
	embedFn := mod.ExportedFunction("embed")
	if alloc == nil || dealloc == nil || embedFn == nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("wasm module %s missing required exports (alloc, dealloc, embed)", wasmPath)
	}

	return &Embedder{
		runtime: rt,
		module:  mod,
		alloc:   alloc,
		dealloc: dealloc,
		embedFn: embedFn,
		logger:  slog.Default().With("component", "wasm_embedder"),
	}, nil
}

// Available reports whether a module is loaded.
func (e *Embedder) Available() bool {
	return e != nil && e.module != nil
}

// Embed copies text into the module's linear memory, invokes its embed
// export, and decodes the resulting float32 vector.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	in := []byte(text)
	inPtr, err := e.allocate(ctx, uint64(len(in)))
	if err != nil {
		return nil, fmt.Errorf("allocating input buffer: %w", err)
	}
	defer e.free(ctx, inPtr, uint64(len(in)))

	if !e.module.Memory().Write(uint32(inPtr), in) {
		return nil, fmt.Errorf("writing input text to wasm memory")
	}

	results, err := e.embedFn.Call(ctx, inPtr, uint64(len(in)))
	if err != nil {
		return nil, fmt.Errorf("calling embed export: %w", err)
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("embed export returned %d results, want 1", len(results))
	}

	outPtr, outLen := unpackPtrLen(results[0])
	defer e.free(ctx, uint64(outPtr), uint64(outLen))

	raw, ok := e.module.Memory().Read(outPtr, outLen)
	if !ok {
		return nil, fmt.Errorf("reading embedding output from wasm memory")
	}

	return decodeFloat32LE(raw), nil
}

func (e *Embedder) allocate(ctx context.Context, size uint64) (uint64, error) {
	results, err := e.alloc.Call(ctx, size)
	if err != nil {
		return 0, err
	}
	return results[0], nil
}

func (e *Embedder) free(ctx context.Context, ptr, size uint64) {
	if _, err := e.dealloc.Call(ctx, ptr, size); err != nil {
		e.logger.Debug("freeing wasm buffer", "error", err)
	}
}

// Close tears down the wazero runtime and all its resources.
func (e *Embedder) Close(ctx context.Context) error {
	if e == nil || e.runtime == nil {
		return nil
	}
	return e.runtime.Close(ctx)
}

// unpackPtrLen splits a single uint64 embed-export result into a (pointer,
// length) pair: pointer in the high 32 bits, length in the low 32 bits.
func unpackPtrLen(packed uint64) (ptr, size uint32) {
	return uint32(packed >> 32), uint32(packed)
}

func decodeFloat32LE(raw []byte) []float32 {
	n := len(raw) / 4
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		out[i] = math.Float32frombits(bits)
	}
	return out
}
