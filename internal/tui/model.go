// Package tui implements the interactive "smartctx preview" debug-trace
// viewer: a ranked, filterable list of the top-scored candidates from a
// SelectionResult, with a detail pane showing the full reasons trail for
// the highlighted file.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ternary/smartcontext/internal/pipeline"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	detailStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the bubbletea model for the preview viewer.
type Model struct {
	list  list.Model
	trace pipeline.DebugTrace
	width int
}

// New builds a Model from a SelectionResult's debug trace.
func New(trace pipeline.DebugTrace) Model {
	items := make([]list.Item, len(trace.TopScores))
	for i, s := range trace.TopScores {
		items[i] = scoreItem{rank: i + 1, score: s}
	}

	delegate := list.NewDefaultDelegate()
	l := list.New(items, delegate, 0, 0)
	l.Title = fmt.Sprintf("smartctx preview — %s scoring, %d/%d selected", trace.ScoringMethod, trace.SelectedCount, trace.TotalCandidates)
	l.SetShowHelp(false)

	return Model{list: l, trace: trace}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		listHeight := msg.Height - detailHeight(msg.Height)
		m.list.SetSize(msg.Width, listHeight)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(detailStyle.Width(m.detailWidth()).Render(m.selectedDetail()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate · / filter · q quit"))
	return b.String()
}

// selectedDetail renders the reasons trail for the currently highlighted
// candidate.
func (m Model) selectedDetail() string {
	item, ok := m.list.SelectedItem().(scoreItem)
	if !ok {
		return "no candidates"
	}
	header := headerStyle.Render(fmt.Sprintf("%s (score %.3f)", item.score.Path, item.score.Score))
	return header + "\n" + item.score.Reasons
}

func (m Model) detailWidth() int {
	if m.width <= 4 {
		return 40
	}
	return m.width - 4
}

// detailHeight reserves a fixed number of rows at the bottom of the
// terminal for the detail pane and help line.
func detailHeight(totalHeight int) int {
	const reserved = 6
	if totalHeight < reserved*2 {
		return totalHeight / 2
	}
	return reserved
}
