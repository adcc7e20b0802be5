// ABOUTME: Bubbletea model for the speech TUI
// ABOUTME: Defines application state, key handling and rendering
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusMsg updates the displayed pipeline status
type StatusMsg struct {
	State   string
	Message string
}

// ArtifactMsg announces a freshly generated download artifact
type ArtifactMsg struct {
	Name string
	Size int
}

// SavedMsg reports the result of saving the artifact
type SavedMsg struct {
	Path string
	Err  string
}

// Request asks the app to generate speech
type Request struct {
	Text  string
	Voice string
}

// Control carries user intents from the TUI to the app loop
type Control struct {
	Generate chan Request
	Toggle   chan struct{}
	Stop     chan struct{}
	Save     chan struct{}
}

// NewControl creates a control handler
func NewControl() *Control {
	return &Control{
		Generate: make(chan Request, 1),
		Toggle:   make(chan struct{}, 1),
		Stop:     make(chan struct{}, 1),
		Save:     make(chan struct{}, 1),
	}
}

// Model represents the TUI state
type Model struct {
	// Input
	text     string
	voices   []string
	voiceIdx int

	// Pipeline
	status  string
	message string

	// Artifact
	artifactName string
	artifactSize int
	savedPath    string
	saveError    string

	// Dimensions
	width  int
	height int

	ctrl *Control
}

// NewModel creates a new TUI model
func NewModel(ctrl *Control, voices []string) Model {
	return Model{
		voices: voices,
		status: "idle",
		ctrl:   ctrl,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.status = msg.State
		m.message = msg.Message
	case ArtifactMsg:
		m.artifactName = msg.Name
		m.artifactSize = msg.Size
		m.savedPath = ""
		m.saveError = ""
	case SavedMsg:
		m.savedPath = msg.Path
		m.saveError = msg.Err
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m, tea.Quit

	case "enter":
		select {
		case m.ctrl.Generate <- Request{Text: m.text, Voice: m.Voice()}:
		default:
		}

	case "ctrl+p":
		signal(m.ctrl.Toggle)

	case "ctrl+x":
		signal(m.ctrl.Stop)

	case "ctrl+s":
		signal(m.ctrl.Save)

	case "left":
		m.voiceIdx--
		if m.voiceIdx < 0 {
			m.voiceIdx = len(m.voices) - 1
		}

	case "right":
		m.voiceIdx++
		if m.voiceIdx >= len(m.voices) {
			m.voiceIdx = 0
		}

	case "backspace":
		if len(m.text) > 0 {
			runes := []rune(m.text)
			m.text = string(runes[:len(runes)-1])
		}

	default:
		if msg.Type == tea.KeyRunes {
			m.text += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.text += " "
		}
	}

	return m, nil
}

// signal delivers an intent without blocking the UI loop
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Voice returns the currently selected voice identifier
func (m Model) Voice() string {
	if len(m.voices) == 0 {
		return ""
	}
	return m.voices[m.voiceIdx]
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := "┌─ Gemini TTS Voice ───────────────────────────────────┐\n"
	s += fmt.Sprintf("│ Text:   %-44s │\n", truncate(m.text, 44))
	s += fmt.Sprintf("│ Voice:  ◀ %-10s ▶ %-23s │\n", m.Voice(), "")
	s += "├──────────────────────────────────────────────────────┤\n"
	s += m.renderStatus()
	s += m.renderArtifact()
	s += "├──────────────────────────────────────────────────────┤\n"
	s += "│ enter:Speak  ^P:Pause  ^X:Stop  ^S:Save  esc:Quit    │\n"
	s += "└──────────────────────────────────────────────────────┘\n"

	return s
}

// renderStatus renders the pipeline status line
func (m Model) renderStatus() string {
	label := m.status
	switch m.status {
	case "generating":
		label = "Generating speech..."
	case "playing":
		label = "▶ Playing"
	case "paused":
		label = "⏸ Paused"
	case "error":
		label = "✗ " + m.message
	case "idle":
		label = "Ready"
	}

	return fmt.Sprintf("│ Status: %-44s │\n", truncate(label, 44))
}

// renderArtifact renders the downloadable file line
func (m Model) renderArtifact() string {
	if m.saveError != "" {
		return fmt.Sprintf("│ Save:   ✗ %-42s │\n", truncate(m.saveError, 42))
	}
	if m.savedPath != "" {
		return fmt.Sprintf("│ Saved:  %-44s │\n", truncate(m.savedPath, 44))
	}
	if m.artifactName != "" {
		line := fmt.Sprintf("%s (%d bytes)", m.artifactName, m.artifactSize)
		return fmt.Sprintf("│ File:   %-44s │\n", truncate(line, 44))
	}
	return "│ File:   (none)                                       │\n"
}

// truncate shortens a string with ellipsis
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
