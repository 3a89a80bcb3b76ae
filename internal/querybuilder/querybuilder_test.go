package querybuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ternary/smartcontext/internal/pipeline"
	"github.com/ternary/smartcontext/internal/querybuilder"
)

func TestBuildIgnoresNonUserMessages(t *testing.T) {
	t.Parallel()

	got := querybuilder.Build(pipeline.PromptContext{
		UserPrompt: "fix login bug",
		RecentMessages: []pipeline.Message{
			{Role: "assistant", Content: "sure, looking into it"},
			{Role: "user", Content: "it happens on submit"},
			{Role: "system", Content: "be concise"},
		},
	})

	assert.Equal(t, "fix login bug it happens on submit", got)
}

func TestBuildKeepsOnlyLastThreeUserMessagesInOrder(t *testing.T) {
	t.Parallel()

	got := querybuilder.Build(pipeline.PromptContext{
		UserPrompt: "p",
		RecentMessages: []pipeline.Message{
			{Role: "user", Content: "one"},
			{Role: "user", Content: "two"},
			{Role: "user", Content: "three"},
			{Role: "user", Content: "four"},
		},
	})

	assert.Equal(t, "p two three four", got)
}

func TestBuildNoHistory(t *testing.T) {
	t.Parallel()

	got := querybuilder.Build(pipeline.PromptContext{UserPrompt: "solo prompt"})
	assert.Equal(t, "solo prompt", got)
}
