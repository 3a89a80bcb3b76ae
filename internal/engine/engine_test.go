package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/engine"
	"github.com/ternary/smartcontext/internal/pipeline"
)

type fakeScanner struct {
	files []pipeline.CodebaseFile
}

func (f fakeScanner) Extract(ctx context.Context, opts pipeline.ScanOptions) (pipeline.ScanResult, error) {
	return pipeline.ScanResult{Files: f.files}, nil
}

type charEstimator struct{}

func (charEstimator) Estimate(text string) int { return len(text) / 4 }

type fixedClock struct{ ms int64 }

func (c fixedClock) NowMS() int64 { return c.ms }

type noopFS struct{}

func (noopFS) StatMTimeMS(string) (int64, error)         { return 0, assertErr }
func (noopFS) ReadFile(string) ([]byte, error)           { return nil, assertErr }
func (noopFS) WriteFile(string, []byte) error            { return nil }
func (noopFS) Remove(string) error                        { return nil }
func (noopFS) MkdirAll(string) error                       { return nil }
func (noopFS) ListDir(string) ([]pipeline.DirEntry, error) { return nil, nil }

var assertErr = &notFoundErr{}

type notFoundErr struct{}

func (*notFoundErr) Error() string { return "not found" }

type unavailableEmbedder struct{}

func (unavailableEmbedder) Available() bool { return false }
func (unavailableEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, assertErr
}

type staticModelMeta struct{}

func (staticModelMeta) MaxTokens(model string) (int, bool) { return 0, false }

func newTestEngine(files []pipeline.CodebaseFile) *engine.Engine {
	return engine.New(engine.Deps{
		Scanner:       fakeScanner{files: files},
		Estimator:     charEstimator{},
		ModelMeta:     staticModelMeta{},
		Embedder:      unavailableEmbedder{},
		Clock:         fixedClock{ms: 1_700_000_000_000},
		FS:            noopFS{},
		CacheDir:      "/tmp/smartctx-test-cache",
		MaxCacheAgeMS: 0,
		Concurrency:   2,
	})
}

func TestSelectOffModeIsPassThrough(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{
		{Path: "a.go", Content: "aaaa"},
		{Path: "b.go", Content: "bbbb"},
		{Path: "c.go", Content: "cccc"},
	}
	e := newTestEngine(files)

	res, err := e.Select(context.Background(), pipeline.SelectOptions{Mode: pipeline.ModeOff})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Debug.SelectedCount)
	assert.Equal(t, res.Debug.TokenUsage, res.Debug.TokenBudget)
	assert.Equal(t, pipeline.ScoringTraditional, res.Debug.ScoringMethod)
	assert.Empty(t, res.Debug.TopScores)
}

func TestSelectFallsBackToTFIDFWhenEmbedderUnavailable(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{
		{Path: "src/components/ThemeToggle.tsx", Content: "export function ThemeToggle() { return toggle(); }"},
		{Path: "src/app/globals.css", Content: ".theme { color: red } .toggle {}"},
		{Path: "src/components/chart/BarChart.tsx", Content: "export function BarChart() {}"},
		{Path: "README.md", Content: "# project readme with unrelated words"},
	}
	e := newTestEngine(files)

	res, err := e.Select(context.Background(), pipeline.SelectOptions{
		Mode: pipeline.ModeBalanced,
		Prompt: pipeline.PromptContext{
			UserPrompt: "add a dark mode toggle",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, pipeline.ScoringTFIDF, res.Debug.ScoringMethod)

	var paths []string
	for _, f := range res.SelectedFiles {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/components/ThemeToggle.tsx")
}

func TestSelectAutoIncludeBypassesLowScore(t *testing.T) {
	t.Parallel()

	files := []pipeline.CodebaseFile{
		{Path: "config/secrets.env", Content: "TOKEN=xyz"},
		{Path: "src/login.go", Content: "func Login() { fixLoginBug() }"},
	}
	e := newTestEngine(files)

	res, err := e.Select(context.Background(), pipeline.SelectOptions{
		Mode: pipeline.ModeBalanced,
		ChatContext: pipeline.ChatContext{
			SmartContextAutoIncludes: []string{"config/secrets.env"},
		},
		Prompt: pipeline.PromptContext{UserPrompt: "fix login bug"},
	})
	require.NoError(t, err)

	var found bool
	for _, f := range res.SelectedFiles {
		if f.Path == "config/secrets.env" {
			found = true
		}
	}
	assert.True(t, found)
}
