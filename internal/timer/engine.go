// Package timer implements the pomodoro phase state machine.
//
// The Engine owns the live State. The poll loop advances it through Tick
// and the control channel mutates it through Apply; both serialize on the
// engine's mutex, so there is exactly one writer at any instant. Durability
// is best-effort: a failed persistence write is logged and never rolls back
// an in-memory transition.
package timer

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrBadDuration is returned by Apply for a SetTime command with a
// non-positive number of seconds.
var ErrBadDuration = errors.New("duration must be positive")

// Store persists timer state snapshots.
type Store interface {
	Save(State) error
}

// Engine is the phase state machine.
type Engine struct {
	mu             sync.Mutex
	st             State
	autoStartWork  bool
	autoStartBreak bool
	store          Store
	logger         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the persistence store. Without one the engine keeps
// state in memory only.
func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithAutoStart sets whether the next phase starts counting immediately
// after a natural boundary crossing into work or into a break.
func WithAutoStart(work, brk bool) Option {
	return func(e *Engine) {
		e.autoStartWork = work
		e.autoStartBreak = brk
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine starting from the given state, typically loaded
// from the store or built from config defaults.
func New(initial State, opts ...Option) *Engine {
	e := &Engine{
		st:             initial,
		autoStartBreak: true,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Flush persists the current state while holding the mutex, so it cannot
// interleave with a save from an in-flight Tick or Apply. Used for the
// final write on shutdown.
func (e *Engine) Flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.store == nil {
		return nil
	}
	return e.store.Save(e.st)
}

// Tick advances the timer by the observed wall-clock delta and returns one
// event per phase boundary crossed. Deltas spanning several boundaries are
// handled in one call, carrying the remainder forward into each next phase.
// When the next phase's auto-start flag is off, the state pins at the
// boundary with Running=false and the remainder is discarded.
func (e *Engine) Tick(delta time.Duration) []TransitionEvent {
	if delta < 0 {
		delta = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.st.Running {
		return nil
	}
	e.st.Elapsed += delta

	var events []TransitionEvent
	for e.st.Elapsed >= e.st.Duration() {
		remainder := e.st.Elapsed - e.st.Duration()
		from := e.st.Phase
		e.advanceLocked()
		events = append(events, TransitionEvent{From: from, To: e.st.Phase, Cause: Natural})

		if !e.autoStartFor(e.st.Phase) {
			e.st.Elapsed = e.st.Duration()
			e.st.Running = false
			break
		}
		e.st.Elapsed = remainder
	}

	if len(events) > 0 {
		e.persistLocked()
	}
	return events
}

// Apply executes one control command and returns the resulting state. Skip
// additionally returns the transition event it forced. Failed commands
// leave the state untouched.
func (e *Engine) Apply(cmd Command) (State, *TransitionEvent, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var ev *TransitionEvent
	switch cmd.Op {
	case Toggle:
		e.setRunningLocked(!e.st.Running)

	case Start:
		e.setRunningLocked(true)

	case Stop:
		e.st.Running = false

	case Reset:
		e.st.Phase = Work
		e.st.Elapsed = 0
		e.st.Iteration = 0
		e.st.Running = false

	case Skip:
		from := e.st.Phase
		e.advanceLocked()
		e.st.Elapsed = 0
		ev = &TransitionEvent{From: from, To: e.st.Phase, Cause: Skipped}

	case SetTime:
		if cmd.Seconds <= 0 {
			return e.st, nil, fmt.Errorf("%w: got %d", ErrBadDuration, cmd.Seconds)
		}
		d := time.Duration(cmd.Seconds) * time.Second
		switch cmd.Phase {
		case ShortBreak:
			e.st.Durations.ShortBreak = d
		case LongBreak:
			e.st.Durations.LongBreak = d
		default:
			e.st.Durations.Work = d
		}
		if cmd.Phase == e.st.Phase && e.st.Elapsed > d {
			e.st.Elapsed = d
		}

	default:
		return e.st, nil, fmt.Errorf("unknown operation %s", cmd.Op)
	}

	e.persistLocked()
	return e.st, ev, nil
}

// advanceLocked steps the transition table once. Caller holds the mutex.
func (e *Engine) advanceLocked() {
	switch e.st.Phase {
	case Work:
		if e.st.Iteration < maxIteration {
			e.st.Phase = ShortBreak
			e.st.Iteration++
		} else {
			e.st.Phase = LongBreak
		}
	case ShortBreak:
		e.st.Phase = Work
	case LongBreak:
		e.st.Phase = Work
		e.st.Iteration = 0
		e.st.SessionsCompleted++
	}
}

// setRunningLocked flips the running flag. Resuming from a pinned boundary
// restarts the phase from zero; otherwise the next tick would immediately
// cross the boundary again.
func (e *Engine) setRunningLocked(run bool) {
	if run && !e.st.Running && e.st.AtBoundary() {
		e.st.Elapsed = 0
	}
	e.st.Running = run
}

func (e *Engine) autoStartFor(p Phase) bool {
	if p.IsBreak() {
		return e.autoStartBreak
	}
	return e.autoStartWork
}

func (e *Engine) persistLocked() {
	if e.store == nil {
		return
	}
	if err := e.store.Save(e.st); err != nil {
		e.logger.Warn("persist timer state failed", "error", err)
	}
}
