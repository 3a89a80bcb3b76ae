package scanner

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExcludeFilter applies the caller-supplied ChatContext.ExcludePaths set,
// treated as doublestar patterns for flexibility (a literal path is itself
// a valid, trivially-matching pattern).
type ExcludeFilter struct {
	patterns []string
	logger   *slog.Logger
}

// NewExcludeFilter builds an ExcludeFilter from a set of patterns.
func NewExcludeFilter(patterns map[string]struct{}) *ExcludeFilter {
	out := make([]string, 0, len(patterns))
	for p := range patterns {
		out = append(out, p)
	}
	return &ExcludeFilter{patterns: out, logger: slog.Default().With("component", "exclude_filter")}
}

// Matches reports whether path should be excluded.
func (e *ExcludeFilter) Matches(path string) bool {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, pattern := range e.patterns {
		if pattern == normalizedPath {
			return true
		}
		if matched, err := doublestar.Match(pattern, normalizedPath); err == nil && matched {
			return true
		}
	}
	return false
}
