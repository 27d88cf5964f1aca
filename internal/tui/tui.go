// Package tui provides a terminal preview of the timer using bubbletea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mstead/pomo/internal/timer"
)

// StateGetter returns the current timer snapshot for display.
type StateGetter func() timer.State

// TUI is the interactive terminal preview of the timer.
type TUI struct {
	getState StateGetter
	onToggle func()
	onSkip   func()
	onReset  func()
	onQuit   func()
}

// Option configures the TUI.
type Option func(*TUI)

// New creates a new TUI reading snapshots from getState.
func New(getState StateGetter, opts ...Option) *TUI {
	t := &TUI{
		getState: getState,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// WithOnToggle sets the callback invoked when the user presses space.
func WithOnToggle(fn func()) Option {
	return func(t *TUI) {
		t.onToggle = fn
	}
}

// WithOnSkip sets the callback invoked when the user presses 'n'.
func WithOnSkip(fn func()) Option {
	return func(t *TUI) {
		t.onSkip = fn
	}
}

// WithOnReset sets the callback invoked when the user presses 'r'.
func WithOnReset(fn func()) Option {
	return func(t *TUI) {
		t.onReset = fn
	}
}

// WithOnQuit sets the callback invoked when the user presses 'q'.
func WithOnQuit(fn func()) Option {
	return func(t *TUI) {
		t.onQuit = fn
	}
}

// Run starts the TUI and blocks until it exits.
func (t *TUI) Run() error {
	m := newModel(t.getState, t.onToggle, t.onSkip, t.onReset, t.onQuit)

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
