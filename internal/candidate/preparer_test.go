package candidate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/candidate"
	"github.com/ternary/smartcontext/internal/pipeline"
)

type lenEstimator struct{}

func (lenEstimator) Estimate(text string) int { return len(text) }

func TestPrepareMarksAutoIncludeFromForceAndPathSet(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{
		{Path: "a.go", Content: "abc", Force: true},
		{Path: "b.go", Content: "abcd"},
		{Path: "c.go", Content: "abcde"},
	}
	autoIncludes := map[string]struct{}{"b.go": {}}

	p := candidate.NewPreparer(lenEstimator{}, 2)
	cands, err := p.Prepare(context.Background(), files, autoIncludes)
	require.NoError(t, err)

	require.Len(t, cands, 3)
	assert.True(t, cands[0].IsAutoInclude)
	assert.True(t, cands[1].IsAutoInclude)
	assert.False(t, cands[2].IsAutoInclude)
}

func TestPrepareEstimatesTokensForEveryCandidate(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{
		{Path: "a.go", Content: "12345"},
		{Path: "b.go", Content: "1234567890"},
	}

	p := candidate.NewPreparer(lenEstimator{}, 4)
	cands, err := p.Prepare(context.Background(), files, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, cands[0].Tokens)
	assert.Equal(t, 10, cands[1].Tokens)
}

func TestPrepareInitialScoreAndReasonsAreEmpty(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{{Path: "a.go", Content: "x"}}
	p := candidate.NewPreparer(lenEstimator{}, 1)
	cands, err := p.Prepare(context.Background(), files, nil)
	require.NoError(t, err)

	assert.Zero(t, cands[0].Score)
	assert.Empty(t, cands[0].Reasons)
}
