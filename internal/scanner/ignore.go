// Package scanner implements the default pipeline.FileScanner: a directory
// walker with layered ignore-pattern matching, binary/size/symlink
// filtering, and auto-include glob handling.
package scanner

import "log/slog"

// Ignorer evaluates whether a workspace-relative path (forward-slash
// separated) should be excluded from candidate harvesting. isDir indicates
// whether path names a directory, needed for directory-only patterns.
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// CompositeIgnorer chains multiple Ignorer implementations; a path is
// ignored if any source matches it. Evaluation order is defaults,
// .gitignore, .smartctxignore.
type CompositeIgnorer struct {
	ignorers []Ignorer
	logger   *slog.Logger
}

// NewCompositeIgnorer builds a CompositeIgnorer from the given ignorers,
// silently skipping any nil entries.
func NewCompositeIgnorer(ignorers ...Ignorer) *CompositeIgnorer {
	filtered := make([]Ignorer, 0, len(ignorers))
	for _, ig := range ignorers {
		if ig != nil {
			filtered = append(filtered, ig)
		}
	}
	return &CompositeIgnorer{
		ignorers: filtered,
		logger:   slog.Default().With("component", "composite_ignorer"),
	}
}

// IsIgnored reports whether any chained ignorer matches path.
func (c *CompositeIgnorer) IsIgnored(path string, isDir bool) bool {
	for _, ig := range c.ignorers {
		if ig.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}

var _ Ignorer = (*CompositeIgnorer)(nil)
