package pipeline

import (
	"errors"
	"fmt"
)

// Error taxonomy (spec §7). None of these are fatal to a Select call; they
// are logged at the point of occurrence and handled locally by the
// component that encountered them. They are exported as sentinels so
// callers and tests can assert on them with errors.Is.
var (
	// ErrEmbeddingUnavailable means no embedding provider is configured.
	// Not an error condition in the traditional sense: it simply routes the
	// engine to the TF-IDF path.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrEmbeddingQueryFailed means the query embedding call failed. The
	// engine recovers by falling back to TF-IDF for the entire call.
	ErrEmbeddingQueryFailed = errors.New("query embedding failed")

	// ErrEmbeddingDocumentFailed means a single file's embedding call
	// failed. The candidate keeps its heuristic/keyword adjustments but
	// contributes zero score from the embedding path.
	ErrEmbeddingDocumentFailed = errors.New("document embedding failed")

	// ErrCacheIO wraps any cache read/write/stat failure. Always swallowed:
	// treated as a miss on read, a no-op on write.
	ErrCacheIO = errors.New("embedding cache I/O error")

	// ErrStatMissing means a filesystem stat of a candidate failed. Recency
	// scoring and the embedding cache read and write are skipped for that
	// file.
	ErrStatMissing = errors.New("file stat unavailable")
)

// ExitCode mirrors the process exit codes a CLI entry point returns.
type ExitCode int

const (
	ExitSuccess ExitCode = 0
	ExitError   ExitCode = 1
)

// CLIError carries an exit code alongside a human-readable message, for
// structured error handling at the command layer (malformed options,
// unreadable workspace, etc. -- the only things fatal to a CLI invocation,
// since the engine itself always returns a SelectionResult for well-formed
// input).
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with ExitError (1) for fatal CLI-layer
// failures.
func NewCLIError(msg string, err error) *CLIError {
	return &CLIError{Code: ExitError, Message: msg, Err: err}
}
