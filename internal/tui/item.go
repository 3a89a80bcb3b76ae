package tui

import (
	"fmt"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// scoreItem adapts a pipeline.TopScore into a bubbles/list.Item so the
// ranked candidate list can be rendered and filtered.
type scoreItem struct {
	rank  int
	score pipeline.TopScore
}

func (i scoreItem) Title() string {
	return fmt.Sprintf("%2d. %s", i.rank, i.score.Path)
}

func (i scoreItem) Description() string {
	return fmt.Sprintf("score %.3f", i.score.Score)
}

func (i scoreItem) FilterValue() string {
	return i.score.Path
}
