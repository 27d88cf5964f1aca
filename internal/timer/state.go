package timer

import (
	"fmt"
	"time"
)

// maxIteration is the number of work/short-break pairs before a long break.
const maxIteration = 3

// State is the complete timer state. The engine hands out copies; callers
// never see (or mutate) the live value.
type State struct {
	Phase             Phase
	Elapsed           time.Duration
	Durations         Durations
	Iteration         int
	SessionsCompleted int
	Running           bool
}

// Duration returns the length of the current phase.
func (s State) Duration() time.Duration {
	return s.Durations.For(s.Phase)
}

// Remaining returns the time left in the current phase, never negative.
func (s State) Remaining() time.Duration {
	r := s.Duration() - s.Elapsed
	if r < 0 {
		return 0
	}
	return r
}

// RemainingFormatted renders the remaining time as MM:SS, or H:MM:SS once
// it exceeds an hour.
func (s State) RemainingFormatted() string {
	total := int(s.Remaining().Round(time.Second) / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// Progress returns elapsed/duration clamped to [0, 1].
func (s State) Progress() float64 {
	d := s.Duration()
	if d <= 0 {
		return 1
	}
	p := float64(s.Elapsed) / float64(d)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// AtBoundary reports whether the timer is pinned at the end of its phase,
// waiting for an explicit start.
func (s State) AtBoundary() bool {
	return s.Elapsed >= s.Duration()
}

// Op is a control operation applied to the engine.
type Op int

const (
	Toggle Op = iota
	Start
	Stop
	Reset
	Skip
	SetTime
)

// String returns the wire name of the operation.
func (o Op) String() string {
	switch o {
	case Toggle:
		return "toggle"
	case Start:
		return "start"
	case Stop:
		return "stop"
	case Reset:
		return "reset"
	case Skip:
		return "skip"
	case SetTime:
		return "set_time"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Command is one control request. Phase and Seconds are only meaningful
// for SetTime.
type Command struct {
	Op      Op
	Phase   Phase
	Seconds int
}
