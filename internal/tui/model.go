package tui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mstead/pomo/internal/timer"
)

// Layout size constants.
const (
	// minWidth is the minimum terminal width for the full layout.
	minWidth = 30
	// minHeight is the minimum terminal height for the full layout.
	minHeight = 8
	// barPadding is the horizontal space reserved around the progress bar.
	barPadding = 6
	// iterationDots is the number of iteration markers shown.
	iterationDots = 4
)

// model is the bubbletea model for the timer preview.
type model struct {
	// State source
	getState StateGetter
	st       timer.State

	// UI state
	width  int
	height int
	bar    progress.Model

	// Callbacks
	onToggle func()
	onSkip   func()
	onReset  func()
	onQuit   func()
}

// newModel creates a new model with the given configuration.
func newModel(getState StateGetter, onToggle, onSkip, onReset, onQuit func()) model {
	bar := progress.New(
		progress.WithDefaultGradient(),
		progress.WithoutPercentage(),
	)

	m := model{
		getState: getState,
		bar:      bar,
		onToggle: onToggle,
		onSkip:   onSkip,
		onReset:  onReset,
		onQuit:   onQuit,
	}
	if getState != nil {
		m.st = getState()
	}
	return m
}

// refresh pulls a fresh snapshot from the state source.
func (m *model) refresh() {
	if m.getState != nil {
		m.st = m.getState()
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		doTick(),
		tea.EnterAltScreen,
	)
}

// Update, handleKey are implemented in update.go
// View is implemented in view.go
