package scanner

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AutoIncludeMatcher tests a workspace-relative path against the
// glob-normalized auto-include set sourced from chat context. A matching
// path bypasses the scanner's ignore rules for that path and the selector's
// score threshold; the walker does not descend into an ignored directory
// whose own path does not match.
type AutoIncludeMatcher struct {
	patterns []string
}

// NewAutoIncludeMatcher builds a matcher from the raw auto-include path
// list. Entries with no glob metacharacters are matched as exact,
// slash-normalized paths.
func NewAutoIncludeMatcher(patterns []string) *AutoIncludeMatcher {
	normalized := make([]string, len(patterns))
	for i, p := range patterns {
		normalized[i] = filepath.ToSlash(p)
	}
	return &AutoIncludeMatcher{patterns: normalized}
}

// Matches reports whether path satisfies any configured auto-include
// pattern.
func (a *AutoIncludeMatcher) Matches(path string) bool {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")
	for _, pattern := range a.patterns {
		if pattern == normalizedPath {
			return true
		}
		if matched, err := doublestar.Match(pattern, normalizedPath); err == nil && matched {
			return true
		}
	}
	return false
}
