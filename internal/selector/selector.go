// Package selector implements the budgeted selection procedure of spec
// §4.10: auto-includes pass through unconditionally, the remainder is
// admitted by descending score subject to a dynamic percentile threshold,
// a mode-specific file cap, and the token budget.
package selector

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// minScoreFloor is the absolute lower bound on the dynamic threshold,
// regardless of the percentile computation (spec §9, open question (c)).
const minScoreFloor = 0.15

// Selector applies the budgeted selection procedure to a ranked candidate
// list.
type Selector struct {
	logger *slog.Logger
}

// NewSelector constructs a Selector.
func NewSelector() *Selector {
	return &Selector{logger: slog.Default().With("component", "selector")}
}

// Select partitions candidates into auto-includes (always kept, in input
// order) and the remainder (admitted by descending score subject to the
// mode's percentile threshold, file cap, and tokenBudget). scoringMethod
// is recorded verbatim into the returned debug trace.
func (s *Selector) Select(candidates []*pipeline.FileCandidate, tokenBudget int, mode pipeline.Mode, scoringMethod pipeline.ScoringMethod) pipeline.SelectionResult {
	var autoIncludes, rest []*pipeline.FileCandidate
	for _, c := range candidates {
		if c.IsAutoInclude {
			autoIncludes = append(autoIncludes, c)
		} else {
			rest = append(rest, c)
		}
	}

	selected := make([]*pipeline.FileCandidate, 0, len(candidates))
	usedTokens := 0

	for _, c := range autoIncludes {
		selected = append(selected, c)
		usedTokens += c.Tokens
	}

	maxFiles := mode.MaxFiles()
	minScore := dynamicThreshold(rest, mode.Percentile())

	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Score > rest[j].Score
	})

	excluded := 0
	for _, c := range rest {
		if c.Score < minScore {
			c.AddReason(0, fmt.Sprintf("filtered: below threshold %.3f", minScore))
			excluded++
			continue
		}
		if len(selected) >= maxFiles {
			c.AddReason(0, "filtered: mode file cap reached")
			excluded++
			break
		}
		if usedTokens+c.Tokens > tokenBudget {
			c.AddReason(0, "filtered: token budget exceeded")
			excluded++
			break
		}
		selected = append(selected, c)
		usedTokens += c.Tokens
	}

	topScores := make([]pipeline.TopScore, 0, min(len(selected), 10))
	for i, c := range selected {
		if i >= 10 {
			break
		}
		topScores = append(topScores, pipeline.TopScore{
			Path:    c.Path,
			Score:   c.Score,
			Reasons: joinReasons(c.Reasons),
		})
	}

	selectedFiles := make([]pipeline.SelectedFile, len(selected))
	for i, c := range selected {
		selectedFiles[i] = pipeline.SelectedFile{Path: c.Path, Content: c.Content, Force: c.Force}
	}

	s.logger.Debug("selection complete",
		"total_candidates", len(candidates),
		"selected", len(selected),
		"auto_includes", len(autoIncludes),
		"excluded", excluded,
		"used_tokens", usedTokens,
		"token_budget", tokenBudget,
	)

	return pipeline.SelectionResult{
		SelectedFiles: selectedFiles,
		Debug: pipeline.DebugTrace{
			TotalCandidates:   len(candidates),
			SelectedCount:     len(selected),
			TokenUsage:        usedTokens,
			TokenBudget:       tokenBudget,
			ScoringMethod:     scoringMethod,
			TopScores:         topScores,
			AutoIncludesCount: len(autoIncludes),
			ExcludedCount:     excluded,
		},
	}
}

// dynamicThreshold computes minScore per spec §4.10 step 4: sort ascending,
// pick the percentile index, floor it against minScoreFloor.
func dynamicThreshold(rest []*pipeline.FileCandidate, percentile float64) float64 {
	if len(rest) == 0 {
		return minScoreFloor
	}

	scores := make([]float64, len(rest))
	for i, c := range rest {
		scores[i] = c.Score
	}
	sort.Float64s(scores)

	idx := int(float64(len(scores)) * percentile)
	if idx < 0 {
		idx = 0
	}
	if idx > len(scores)-1 {
		idx = len(scores) - 1
	}

	percentileCut := scores[idx]
	if percentileCut > minScoreFloor {
		return percentileCut
	}
	return minScoreFloor
}

func joinReasons(reasons []string) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += r
	}
	return out
}
