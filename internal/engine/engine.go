// Package engine implements the Smart Context Engine orchestration of spec
// §4.11: the single select(options) -> SelectionResult operation that
// harvests candidates, picks a base scorer, applies heuristic and keyword
// adjustments, and runs the budgeted selector.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zeebo/xxh3"

	"github.com/ternary/smartcontext/internal/candidate"
	"github.com/ternary/smartcontext/internal/embedding"
	"github.com/ternary/smartcontext/internal/heuristic"
	"github.com/ternary/smartcontext/internal/keyword"
	"github.com/ternary/smartcontext/internal/pipeline"
	"github.com/ternary/smartcontext/internal/querybuilder"
	"github.com/ternary/smartcontext/internal/selector"
	"github.com/ternary/smartcontext/internal/tfidf"
)

// fixedReservation is subtracted from a model's max tokens to leave room
// for system (~2000), user (~1000), output (~4000), and safety (~1000)
// overhead (spec §4.11).
const fixedReservation = 8000

// minDerivedBudget is the floor a derived budget never goes below, even
// for a model with very little headroom.
const minDerivedBudget = 10000

// Deps bundles every collaborator the engine requires (spec §6: Provider
// interfaces).
type Deps struct {
	Scanner       pipeline.FileScanner
	Estimator     pipeline.TokenEstimator
	ModelMeta     pipeline.ModelMeta
	Embedder      pipeline.Embedder // may be nil
	Clock         pipeline.Clock
	FS            pipeline.Filesystem
	CacheDir      string
	MaxCacheAgeMS int64

	Concurrency int
}

// Engine is the Smart Context Engine. A single instance is safe for
// concurrent Select calls: the only shared mutable state is the embedding
// cache directory, which tolerates concurrent writers by content-addressing.
type Engine struct {
	deps   Deps
	cache  *embedding.Cache
	logger *slog.Logger
}

// New constructs an Engine and runs an asynchronous, best-effort cache
// eviction pass over deps.CacheDir.
func New(deps Deps) *Engine {
	cache := embedding.NewCache(deps.CacheDir, deps.FS)

	e := &Engine{
		deps:   deps,
		cache:  cache,
		logger: slog.Default().With("component", "engine"),
	}

	go cache.Cleanup(deps.Clock.NowMS(), deps.MaxCacheAgeMS)

	return e
}

// Select runs a single selection call end to end.
func (e *Engine) Select(ctx context.Context, opts pipeline.SelectOptions) (pipeline.SelectionResult, error) {
	traceID := fmt.Sprintf("%016x", xxh3.HashString(opts.AppPath+"|"+opts.Prompt.UserPrompt+"|"+string(opts.Mode)))
	logger := e.logger.With("trace_id", traceID)

	scanResult, err := e.deps.Scanner.Extract(ctx, pipeline.ScanOptions{
		AppPath:     opts.AppPath,
		ChatContext: opts.ChatContext,
	})
	if err != nil {
		return pipeline.SelectionResult{}, fmt.Errorf("harvesting candidates: %w", err)
	}

	if opts.Mode == pipeline.ModeOff {
		return e.traditionalPath(scanResult, traceID), nil
	}

	autoIncludePaths := make(map[string]struct{}, len(opts.ChatContext.SmartContextAutoIncludes))
	for _, p := range opts.ChatContext.SmartContextAutoIncludes {
		autoIncludePaths[p] = struct{}{}
	}

	preparer := candidate.NewPreparer(e.deps.Estimator, e.deps.Concurrency)
	candidates, err := preparer.Prepare(ctx, scanResult.Files, autoIncludePaths)
	if err != nil {
		return pipeline.SelectionResult{}, fmt.Errorf("preparing candidates: %w", err)
	}

	query := querybuilder.Build(opts.Prompt)

	budget := opts.TokenBudget
	if budget <= 0 {
		budget = e.deriveBudget(opts.Model)
	}

	scoringMethod, err := e.applyBaseScore(ctx, query, candidates, logger)
	if err != nil {
		return pipeline.SelectionResult{}, err
	}

	heuristic.NewScorer(e.deps.Clock, e.deps.FS).Score(query, candidates)
	keyword.Adjust(query, candidates)

	result := selector.NewSelector().Select(candidates, budget, opts.Mode, scoringMethod)
	result.Debug.TraceID = traceID

	logger.Debug("select complete",
		"scoring_method", scoringMethod,
		"selected", result.Debug.SelectedCount,
		"total_candidates", result.Debug.TotalCandidates,
	)

	return result, nil
}

// traditionalPath implements the mode=off pass-through (spec §4.11).
func (e *Engine) traditionalPath(scanResult pipeline.ScanResult, traceID string) pipeline.SelectionResult {
	selectedFiles := make([]pipeline.SelectedFile, len(scanResult.Files))
	tokenUsage := 0
	for i, f := range scanResult.Files {
		selectedFiles[i] = pipeline.SelectedFile{Path: f.Path, Content: f.Content, Force: f.Force}
		tokenUsage += e.deps.Estimator.Estimate(f.Content)
	}

	return pipeline.SelectionResult{
		SelectedFiles: selectedFiles,
		Debug: pipeline.DebugTrace{
			TotalCandidates: len(scanResult.Files),
			SelectedCount:   len(selectedFiles),
			TokenUsage:      tokenUsage,
			TokenBudget:     tokenUsage,
			ScoringMethod:   pipeline.ScoringTraditional,
			TopScores:       []pipeline.TopScore{},
			TraceID:         traceID,
		},
	}
}

// applyBaseScore picks the embedding scorer when an Embedder is configured
// and available, falling back to TF-IDF on unavailability or query
// failure (spec §4.3, §7).
func (e *Engine) applyBaseScore(ctx context.Context, query string, candidates []*pipeline.FileCandidate, logger *slog.Logger) (pipeline.ScoringMethod, error) {
	if e.deps.Embedder != nil && e.deps.Embedder.Available() {
		scorer := embedding.NewScorer(e.deps.Embedder, e.cache, e.deps.FS, e.deps.Concurrency)
		err := scorer.Score(ctx, query, candidates)
		if err == nil {
			return pipeline.ScoringEmbeddings, nil
		}
		logger.Warn("embedding path failed, falling back to tf-idf", "error", err)
	}

	docs := make([]tfidf.Document, len(candidates))
	for i, c := range candidates {
		docs[i] = tfidf.Document{ID: c.Path, Text: c.Content}
	}
	idx := tfidf.Build(docs)
	for _, c := range candidates {
		score := idx.Score(c.Path, query)
		c.AddReason(score, fmt.Sprintf("tf-idf score: %.3f", score))
	}
	return pipeline.ScoringTFIDF, nil
}

// deriveBudget computes the default token budget per spec §4.11 step 2.
func (e *Engine) deriveBudget(model string) int {
	maxTokens, ok := e.deps.ModelMeta.MaxTokens(model)
	if !ok {
		maxTokens = 32000
	}
	budget := maxTokens - fixedReservation
	if budget < minDerivedBudget {
		budget = minDerivedBudget
	}
	return budget
}
