package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternary/smartcontext/internal/heuristic"
	"github.com/ternary/smartcontext/internal/pipeline"
)

type fixedClock struct{ nowMS int64 }

func (c fixedClock) NowMS() int64 { return c.nowMS }

type statFS struct {
	mtimes map[string]int64
}

func (s statFS) StatMTimeMS(path string) (int64, error) {
	m, ok := s.mtimes[path]
	if !ok {
		return 0, assert.AnError
	}
	return m, nil
}
func (statFS) ReadFile(string) ([]byte, error)            { return nil, nil }
func (statFS) WriteFile(string, []byte) error             { return nil }
func (statFS) Remove(string) error                        { return nil }
func (statFS) MkdirAll(string) error                      { return nil }
func (statFS) ListDir(string) ([]pipeline.DirEntry, error) { return nil, nil }

func TestScorePathMatchBoostsBasename(t *testing.T) {
	t.Parallel()

	clock := fixedClock{nowMS: 1_000_000_000}
	fs := statFS{mtimes: map[string]int64{"src/ThemeToggle.tsx": 1_000_000_000 - 1}}
	s := heuristic.NewScorer(clock, fs)

	cands := []*pipeline.FileCandidate{
		{CodebaseFile: pipeline.CodebaseFile{Path: "src/ThemeToggle.tsx"}},
	}
	s.Score("add a theme toggle", cands)

	assert.Greater(t, cands[0].Score, 0.0)
}

func TestScoreTestFilePenalizedWhenQueryIsntAboutTests(t *testing.T) {
	t.Parallel()

	clock := fixedClock{nowMS: 1_000_000_000}
	fs := statFS{}
	s := heuristic.NewScorer(clock, fs)

	cands := []*pipeline.FileCandidate{
		{CodebaseFile: pipeline.CodebaseFile{Path: "src/foo.test.ts"}},
	}
	s.Score("refactor the parser", cands)

	assert.Less(t, cands[0].Score, 0.0)
}

func TestScoreAutoIncludeBoost(t *testing.T) {
	t.Parallel()

	clock := fixedClock{nowMS: 1_000_000_000}
	fs := statFS{}
	s := heuristic.NewScorer(clock, fs)

	cands := []*pipeline.FileCandidate{
		{CodebaseFile: pipeline.CodebaseFile{Path: "config/secrets.env"}, IsAutoInclude: true},
	}
	s.Score("fix login bug", cands)

	assert.GreaterOrEqual(t, cands[0].Score, 10.0)
}

func TestScoreRecencyTiers(t *testing.T) {
	t.Parallel()

	now := int64(1_000_000_000_000)
	fs := statFS{mtimes: map[string]int64{
		"recent.go": now - 1000,
		"old.go":    now - 40*24*60*60*1000,
	}}
	s := heuristic.NewScorer(fixedClock{nowMS: now}, fs)

	cands := []*pipeline.FileCandidate{
		{CodebaseFile: pipeline.CodebaseFile{Path: "recent.go"}},
		{CodebaseFile: pipeline.CodebaseFile{Path: "old.go"}},
	}
	s.Score("unrelated query", cands)

	assert.Greater(t, cands[0].Score, cands[1].Score)
}
