package scanner

import (
	"log/slog"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnorePatterns are built-in ignore rules applied unless explicitly
// overridden: VCS/build directories, environment and secret-shaped files,
// lock files, compiled artifacts, and OS/editor metadata.
var DefaultIgnorePatterns = []string{
	".git/",
	"node_modules/",
	"dist/",
	"build/",
	"coverage/",
	"__pycache__/",
	".next/",
	"target/",
	"vendor/",
	".ternary/",

	".env",
	".env.*",

	"*.pem",
	"*.key",
	"*.p12",
	"*.pfx",

	"*secret*",
	"*credential*",
	"*password*",

	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"Cargo.lock",
	"go.sum",
	"poetry.lock",

	"*.pyc",
	"*.pyo",
	"*.class",
	"*.o",
	"*.obj",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",

	".DS_Store",
	"Thumbs.db",
	".idea/",
	".vscode/",
	"*.swp",
	"*.swo",
}

// DefaultIgnoreMatcher compiles DefaultIgnorePatterns into an Ignorer.
type DefaultIgnoreMatcher struct {
	matcher *gitignore.GitIgnore
	logger  *slog.Logger
}

// NewDefaultIgnoreMatcher compiles the built-in pattern set. The patterns
// are compile-time constants, so this never fails.
func NewDefaultIgnoreMatcher() *DefaultIgnoreMatcher {
	compiled := gitignore.CompileIgnoreLines(DefaultIgnorePatterns...)
	logger := slog.Default().With("component", "default_ignore")
	logger.Debug("default ignore matcher initialized", "pattern_count", len(DefaultIgnorePatterns))
	return &DefaultIgnoreMatcher{matcher: compiled, logger: logger}
}

// IsIgnored reports whether path matches any default ignore pattern.
func (d *DefaultIgnoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalizedPath := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalizedPath == "" || normalizedPath == "." {
		return false
	}

	matchPath := normalizedPath
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	return d.matcher.MatchesPath(matchPath)
}

var _ Ignorer = (*DefaultIgnoreMatcher)(nil)
