// Package querybuilder assembles the scoring query from the current
// prompt and recent conversation history (spec §4.8).
package querybuilder

import (
	"strings"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// recentUserMessages is the number of trailing user-role messages folded
// into the query.
const recentUserMessages = 3

// Build returns userPrompt joined with the content of the last
// recentUserMessages messages authored by role "user", in source order.
// Assistant and system messages are ignored entirely.
func Build(ctx pipeline.PromptContext) string {
	var userTurns []string
	for _, m := range ctx.RecentMessages {
		if m.Role == "user" {
			userTurns = append(userTurns, m.Content)
		}
	}

	if len(userTurns) > recentUserMessages {
		userTurns = userTurns[len(userTurns)-recentUserMessages:]
	}

	parts := append([]string{ctx.UserPrompt}, userTurns...)
	return strings.Join(parts, " ")
}
