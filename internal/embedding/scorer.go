package embedding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// Scorer is the embedding-based scoring path (spec §4.5): it embeds the
// query once, then embeds (or cache-hits) every candidate's content in
// bounded parallel and scores each by cosine similarity.
type Scorer struct {
	embedder    pipeline.Embedder
	cache       *Cache
	fs          pipeline.Filesystem
	concurrency int
	logger      *slog.Logger
}

// NewScorer constructs a Scorer. concurrency <= 0 defaults to
// runtime.NumCPU().
func NewScorer(embedder pipeline.Embedder, cache *Cache, fs pipeline.Filesystem, concurrency int) *Scorer {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Scorer{
		embedder:    embedder,
		cache:       cache,
		fs:          fs,
		concurrency: concurrency,
		logger:      slog.Default().With("component", "embedding_scorer"),
	}
}

// Score embeds query and scores every candidate by cosine similarity
// against its (cached or freshly embedded) content vector, appending a
// reason and adding to candidate.Score in place.
//
// If the query embedding call fails, Score returns
// pipeline.ErrEmbeddingQueryFailed immediately and leaves every candidate
// untouched; the caller is expected to fall back to TF-IDF for the whole
// call. Per-candidate embedding failures are logged and leave that
// candidate's score contribution at zero; they do not abort the run.
func (s *Scorer) Score(ctx context.Context, query string, candidates []*pipeline.FileCandidate) error {
	if !s.embedder.Available() {
		return pipeline.ErrEmbeddingUnavailable
	}

	queryVec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return fmt.Errorf("%w: %w", pipeline.ErrEmbeddingQueryFailed, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, cand := range candidates {
		cand := cand
		g.Go(func() error {
			sim := s.scoreOne(gctx, queryVec, cand)
			cand.AddReason(sim, fmt.Sprintf("embedding similarity: %.3f", sim))
			return nil
		})
	}

	// No goroutine returns an error: per-candidate embedding failures
	// (including ones caused by ctx cancellation) are handled inside
	// scoreOne and never propagated, so g.Wait returns nil.
	if err := g.Wait(); err != nil {
		return err
	}
	return nil
}

func (s *Scorer) scoreOne(ctx context.Context, queryVec []float32, cand *pipeline.FileCandidate) float64 {
	mtimeMS, statErr := s.fs.StatMTimeMS(cand.Path)

	var docVec []float32
	ok := false
	if statErr == nil {
		docVec, ok = s.cache.Get(cand.Path, cand.Content, mtimeMS)
	}
	if !ok {
		v, err := s.embedder.Embed(ctx, cand.Content)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				s.logger.Debug("document embedding failed", "path", cand.Path, "error", err)
			}
			return 0
		}
		docVec = v
		if statErr == nil {
			s.cache.Set(cand.Path, cand.Content, mtimeMS, docVec)
		}
	}

	return cosineSimilarity(queryVec, docVec)
}

// cosineSimilarity returns dot(a,b) / (|a|*|b|), or 0 for a dimension
// mismatch or either vector having zero magnitude.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
