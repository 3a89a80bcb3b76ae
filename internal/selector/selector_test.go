package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/pipeline"
	"github.com/ternary/smartcontext/internal/selector"
)

func cand(path string, score float64, tokens int, auto bool) *pipeline.FileCandidate {
	return &pipeline.FileCandidate{
		CodebaseFile:  pipeline.CodebaseFile{Path: path},
		Score:         score,
		IsAutoInclude: auto,
		Tokens:        tokens,
	}
}

func TestSelectAutoIncludesAlwaysPresentRegardlessOfScore(t *testing.T) {
	t.Parallel()

	cands := []*pipeline.FileCandidate{
		cand("config/secrets.env", -50, 10, true),
		cand("a.go", 5.0, 10, false),
	}

	s := selector.NewSelector()
	res := s.Select(cands, 1000, pipeline.ModeBalanced, pipeline.ScoringTFIDF)

	var paths []string
	for _, f := range res.SelectedFiles {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "config/secrets.env")
}

func TestSelectRespectsTokenBudget(t *testing.T) {
	t.Parallel()

	cands := []*pipeline.FileCandidate{
		cand("a.go", 5.0, 60, false),
		cand("b.go", 4.0, 60, false),
		cand("c.go", 3.0, 60, false),
	}

	s := selector.NewSelector()
	res := s.Select(cands, 100, pipeline.ModeBalanced, pipeline.ScoringTFIDF)

	assert.LessOrEqual(t, res.Debug.TokenUsage, 100)
}

func TestSelectRespectsModeCapConservative(t *testing.T) {
	t.Parallel()

	var cands []*pipeline.FileCandidate
	for i := 0; i < 30; i++ {
		cands = append(cands, cand("f"+string(rune('a'+i)), float64(30-i), 1, false))
	}

	s := selector.NewSelector()
	res := s.Select(cands, 10000, pipeline.ModeConservative, pipeline.ScoringTFIDF)

	assert.LessOrEqual(t, len(res.SelectedFiles), 8)
}

func TestSelectStableTieBreakByInputOrder(t *testing.T) {
	t.Parallel()

	cands := []*pipeline.FileCandidate{
		cand("a.go", 1.0, 1, false),
		cand("b.go", 1.0, 1, false),
	}

	s := selector.NewSelector()
	res := s.Select(cands, 1000, pipeline.ModeBalanced, pipeline.ScoringTFIDF)

	require.Len(t, res.SelectedFiles, 2)
	assert.Equal(t, "a.go", res.SelectedFiles[0].Path)
	assert.Equal(t, "b.go", res.SelectedFiles[1].Path)
}

func TestSelectScoringMethodPropagated(t *testing.T) {
	t.Parallel()

	s := selector.NewSelector()
	res := s.Select(nil, 1000, pipeline.ModeBalanced, pipeline.ScoringEmbeddings)
	assert.Equal(t, pipeline.ScoringEmbeddings, res.Debug.ScoringMethod)
}

func TestSelectBelowThresholdFiltered(t *testing.T) {
	t.Parallel()

	cands := []*pipeline.FileCandidate{
		cand("a.go", 0.01, 1, false),
	}

	s := selector.NewSelector()
	res := s.Select(cands, 1000, pipeline.ModeBalanced, pipeline.ScoringTFIDF)

	assert.Empty(t, res.SelectedFiles)
	assert.Contains(t, cands[0].Reasons[len(cands[0].Reasons)-1], "filtered: below threshold")
}
