// Package candidate turns raw scanner output into scored candidate state
// (spec §4.9): token estimation and auto-include detection, in bounded
// parallel over the corpus.
package candidate

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// Preparer converts raw pipeline.CodebaseFile entries into
// pipeline.FileCandidate, estimating tokens in parallel via a bounded
// worker pool.
type Preparer struct {
	estimator   pipeline.TokenEstimator
	concurrency int
}

// NewPreparer constructs a Preparer. concurrency <= 0 defaults to
// runtime.NumCPU().
func NewPreparer(estimator pipeline.TokenEstimator, concurrency int) *Preparer {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Preparer{estimator: estimator, concurrency: concurrency}
}

// Prepare builds one FileCandidate per input file, marking isAutoInclude
// when the file's Force flag is set or its path appears in
// autoIncludePaths, and estimating each candidate's token count in
// parallel.
func (p *Preparer) Prepare(ctx context.Context, files []pipeline.CodebaseFile, autoIncludePaths map[string]struct{}) ([]*pipeline.FileCandidate, error) {
	candidates := make([]*pipeline.FileCandidate, len(files))
	for i, f := range files {
		_, isAuto := autoIncludePaths[f.Path]
		candidates[i] = &pipeline.FileCandidate{
			CodebaseFile:  f,
			IsAutoInclude: f.Force || isAuto,
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for _, c := range candidates {
		c := c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("preparing candidates cancelled: %w", err)
			}
			c.Tokens = p.estimator.Estimate(c.Content)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}
