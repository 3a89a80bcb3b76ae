package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// Options configures a FileScanner beyond the per-call ScanOptions the
// pipeline.FileScanner interface exposes: these are fixed at construction
// time, analogous to CLI flags in the walker's original form.
type Options struct {
	// MaxFileSize is the size cap in bytes; <= 0 selects DefaultMaxFileSize.
	MaxFileSize int64

	// Concurrency bounds parallel content reads. <= 0 defaults to
	// runtime.NumCPU().
	Concurrency int
}

// FileScanner is the default pipeline.FileScanner: it walks AppPath,
// applies default/.gitignore/.smartctxignore rules plus the chat context's
// exclude set, detects binaries and oversized files, and reads surviving
// file contents in bounded parallel. Paths matching an auto-include glob
// bypass the ignore, exclude, size and binary checks for that path and are
// marked Force; files beneath an ignored directory are not visited unless
// the directory path itself matches an auto-include glob.
type FileScanner struct {
	opts   Options
	logger *slog.Logger
}

// New constructs a FileScanner.
func New(opts Options) *FileScanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.MaxFileSize <= 0 {
		opts.MaxFileSize = DefaultMaxFileSize
	}
	return &FileScanner{
		opts:   opts,
		logger: slog.Default().With("component", "scanner"),
	}
}

// Extract implements pipeline.FileScanner.
func (s *FileScanner) Extract(ctx context.Context, opts pipeline.ScanOptions) (pipeline.ScanResult, error) {
	root, err := filepath.Abs(opts.AppPath)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("resolving app path %s: %w", opts.AppPath, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("stat app path %s: %w", root, err)
	}
	if !info.IsDir() {
		return pipeline.ScanResult{}, fmt.Errorf("app path %s is not a directory", root)
	}

	gitignoreMatcher, err := NewGitignoreMatcher(root)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("loading .gitignore rules: %w", err)
	}
	toolIgnoreMatcher, err := NewToolIgnoreMatcher(root)
	if err != nil {
		return pipeline.ScanResult{}, fmt.Errorf("loading .smartctxignore rules: %w", err)
	}
	composite := NewCompositeIgnorer(NewDefaultIgnoreMatcher(), gitignoreMatcher, toolIgnoreMatcher)
	excludeFilter := NewExcludeFilter(opts.ChatContext.ExcludePaths)
	autoInclude := NewAutoIncludeMatcher(opts.ChatContext.SmartContextAutoIncludes)
	symResolver := NewSymlinkResolver()

	type found struct {
		path    string
		absPath string
		force   bool
	}
	var files []found
	var mu sync.Mutex

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			s.logger.Debug("walk error", "path", path, "error", walkErr)
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		isDir := d.IsDir()
		isForced := autoInclude.Matches(relPath)

		if isDir && d.Name() == ".git" {
			return fs.SkipDir
		}

		if !isForced {
			if composite.IsIgnored(relPath, isDir) || excludeFilter.Matches(relPath) {
				if isDir {
					return fs.SkipDir
				}
				return nil
			}
		}

		if isDir {
			return nil
		}

		absPath := path
		if d.Type()&os.ModeSymlink != 0 {
			realPath, isLoop, err := symResolver.Resolve(path)
			if err != nil {
				s.logger.Debug("symlink error", "path", relPath, "error", err)
				return nil
			}
			if isLoop {
				s.logger.Debug("symlink loop", "path", relPath)
				return nil
			}
			symResolver.MarkVisited(realPath)
			absPath = realPath
		}

		fileInfo, err := os.Stat(absPath)
		if err != nil {
			s.logger.Debug("stat error", "path", relPath, "error", err)
			return nil
		}

		if !isForced && s.opts.MaxFileSize > 0 && fileInfo.Size() > s.opts.MaxFileSize {
			s.logger.Debug("large file skipped", "path", relPath, "size", fileInfo.Size())
			return nil
		}

		isBin, binErr := IsBinary(absPath)
		if binErr != nil {
			s.logger.Debug("binary detection error, including file anyway", "path", relPath, "error", binErr)
		}
		if !isForced && isBin {
			s.logger.Debug("binary file skipped", "path", relPath)
			return nil
		}

		mu.Lock()
		files = append(files, found{path: relPath, absPath: absPath, force: isForced})
		mu.Unlock()
		return nil
	})
	if walkErr != nil {
		return pipeline.ScanResult{}, fmt.Errorf("walking directory %s: %w", root, walkErr)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].path < files[j].path })

	results := make([]pipeline.CodebaseFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, f := range files {
		i, f := i, f
		results[i] = pipeline.CodebaseFile{Path: f.path, Force: f.force}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("reading file contents cancelled: %w", err)
			}
			content, err := os.ReadFile(f.absPath)
			if err != nil {
				s.logger.Debug("file read error", "path", f.path, "error", err)
				return nil
			}
			results[i].Content = string(content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return pipeline.ScanResult{}, err
	}

	s.logger.Info("scan complete", "files", len(results))
	return pipeline.ScanResult{Files: results}, nil
}

var _ pipeline.FileScanner = (*FileScanner)(nil)
