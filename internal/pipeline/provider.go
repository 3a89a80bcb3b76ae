package pipeline

import "context"

// FileScanner is the provider interface the engine consumes to harvest raw
// candidate files. Implementations own upstream include/exclude/auto-include
// and size-cap policy; the engine treats the result as opaque input.
type FileScanner interface {
	Extract(ctx context.Context, opts ScanOptions) (ScanResult, error)
}

// ScanOptions carries the inputs a FileScanner needs to harvest candidates.
type ScanOptions struct {
	AppPath     string
	ChatContext ChatContext
}

// ScanResult is the output of a FileScanner.Extract call.
type ScanResult struct {
	Files []CodebaseFile
}

// TokenEstimator is an opaque, deterministic byte-to-token estimator. The
// core treats it as a pure function of its input text.
type TokenEstimator interface {
	Estimate(text string) int
}

// ModelMeta answers how many tokens of context a named model supports.
// MaxTokens returns ok=false when the model is unknown, in which case
// callers fall back to a fixed default.
type ModelMeta interface {
	MaxTokens(model string) (tokens int, ok bool)
}

// Embedder produces a fixed-dimension embedding vector for arbitrary text.
// Available reports whether an embedding backend is configured at all;
// Embed performs the actual call and may fail per-file or for the query.
type Embedder interface {
	Available() bool
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Clock abstracts wall-clock time for recency scoring and cache eviction.
type Clock interface {
	NowMS() int64
}

// Filesystem abstracts the minimal filesystem operations the engine and its
// embedding cache need: stat for mtime/recency, and basic read/write/unlink/
// mkdir-p over a cache directory the engine owns.
type Filesystem interface {
	StatMTimeMS(path string) (int64, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Remove(path string) error
	MkdirAll(path string) error
	ListDir(path string) ([]DirEntry, error)
}

// DirEntry is a minimal directory listing entry used by cache cleanup.
type DirEntry struct {
	Name    string
	MTimeMS int64
}
