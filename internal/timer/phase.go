package timer

import (
	"fmt"
	"time"
)

// Phase is the timer's current activity segment.
type Phase int

const (
	Work Phase = iota
	ShortBreak
	LongBreak
)

// String returns the snake_case name used in config files, the wire
// protocol, and persisted snapshots.
func (p Phase) String() string {
	switch p {
	case Work:
		return "work"
	case ShortBreak:
		return "short_break"
	case LongBreak:
		return "long_break"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// IsBreak reports whether the phase is a short or long break.
func (p Phase) IsBreak() bool {
	return p == ShortBreak || p == LongBreak
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePhase converts a phase name to a Phase.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "work":
		return Work, nil
	case "short_break", "short-break":
		return ShortBreak, nil
	case "long_break", "long-break":
		return LongBreak, nil
	default:
		return Work, fmt.Errorf("unknown phase %q", s)
	}
}

// Cause records why a phase transition happened.
type Cause int

const (
	// Natural means the phase ran to the end of its duration.
	Natural Cause = iota
	// Skipped means the transition was forced by a Skip command.
	Skipped
)

// String returns the wire name of the cause.
func (c Cause) String() string {
	if c == Skipped {
		return "skipped"
	}
	return "natural"
}

// MarshalText implements encoding.TextMarshaler.
func (c Cause) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cause) UnmarshalText(text []byte) error {
	switch string(text) {
	case "natural":
		*c = Natural
	case "skipped":
		*c = Skipped
	default:
		return fmt.Errorf("unknown cause %q", text)
	}
	return nil
}

// TransitionEvent records a single phase change and its cause. The engine
// emits one per boundary crossed; sound and notification collaborators
// decide downstream what to do with each cause.
type TransitionEvent struct {
	From  Phase `json:"from"`
	To    Phase `json:"to"`
	Cause Cause `json:"cause"`
}

// Durations holds the configured length of each phase.
type Durations struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

// For returns the duration of the given phase.
func (d Durations) For(p Phase) time.Duration {
	switch p {
	case ShortBreak:
		return d.ShortBreak
	case LongBreak:
		return d.LongBreak
	default:
		return d.Work
	}
}

// Valid reports whether every phase duration is positive.
func (d Durations) Valid() bool {
	return d.Work > 0 && d.ShortBreak > 0 && d.LongBreak > 0
}
