package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ternary/smartcontext/internal/pipeline"
)

// Run launches the interactive preview viewer over result's debug trace,
// blocking until the user quits.
func Run(result pipeline.SelectionResult) error {
	_, err := tea.NewProgram(New(result.Debug), tea.WithAltScreen()).Run()
	return err
}
