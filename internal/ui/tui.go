// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for the speech UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI
func Run(ctrl *Control, voices []string) *tea.Program {
	return tea.NewProgram(NewModel(ctrl, voices), tea.WithAltScreen())
}
