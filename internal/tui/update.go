package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickInterval is how often the display resyncs with the timer.
const tickInterval = 250 * time.Millisecond

// tickMsg signals a periodic display refresh.
type tickMsg time.Time

// doTick creates a command that waits for the tick interval and sends a tickMsg.
func doTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model. It handles all message types and updates the model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(1, msg.Width-barPadding)
		return m, nil

	case tickMsg:
		m.refresh()
		return m, doTick()

	default:
		return m, nil
	}
}

// handleKey processes keyboard input and returns the updated model and command.
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit

	case " ":
		if m.onToggle != nil {
			m.onToggle()
		}
		m.refresh()
		return m, nil

	case "n":
		if m.onSkip != nil {
			m.onSkip()
		}
		m.refresh()
		return m, nil

	case "r":
		if m.onReset != nil {
			m.onReset()
		}
		m.refresh()
		return m, nil

	default:
		return m, nil
	}
}
