package modelmeta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternary/smartcontext/internal/modelmeta"
)

func TestMaxTokensKnownModel(t *testing.T) {
	t.Parallel()

	tbl := modelmeta.Table{}
	tokens, ok := tbl.MaxTokens("gpt-4o")
	assert.True(t, ok)
	assert.Equal(t, 128000, tokens)
}

func TestMaxTokensMatchesLongestPrefix(t *testing.T) {
	t.Parallel()

	tbl := modelmeta.Table{}
	tokens, ok := tbl.MaxTokens("claude-3-5-sonnet-20241022")
	assert.True(t, ok)
	assert.Equal(t, 200000, tokens)
}

func TestMaxTokensUnknownModel(t *testing.T) {
	t.Parallel()

	tbl := modelmeta.Table{}
	_, ok := tbl.MaxTokens("some-unreleased-model")
	assert.False(t, ok)
}
