package tokenizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternary/smartcontext/internal/tokenizer"
)

func TestNewCharEstimator(t *testing.T) {
	t.Parallel()

	e, err := tokenizer.New(tokenizer.NameNone)
	require.NoError(t, err)
	assert.Equal(t, tokenizer.NameNone, e.Name())
	assert.Equal(t, 0, e.Estimate(""))
	assert.Equal(t, 2, e.Estimate("12345678"))
}

func TestNewUnknownEstimator(t *testing.T) {
	t.Parallel()

	_, err := tokenizer.New("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, tokenizer.ErrUnknownEstimator)
}

func TestNewDefaultsToCL100K(t *testing.T) {
	t.Parallel()

	e, err := tokenizer.New("")
	if err != nil {
		t.Skipf("cl100k_base BPE data unavailable in this environment: %v", err)
	}
	assert.Equal(t, tokenizer.NameCL100K, e.Name())
	assert.Greater(t, e.Estimate("the quick brown fox jumps over the lazy dog"), 0)
}
