// Package event defines the phase-transition event types and the
// channel-based pub/sub plumbing that carries them from the timer engine
// to sound and notification collaborators.
package event

import (
	"time"

	"github.com/mstead/pomo/internal/timer"
)

// EventType identifies the category of an event.
type EventType string

const (
	// EventTransition is emitted once per phase change, natural or skipped.
	EventTransition EventType = "timer.transition"
)

// Event is the base interface for all events in the system.
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides the common fields for all events.
type BaseEvent struct {
	EventType EventType `json:"type"`
	Time      time.Time `json:"timestamp"`
}

// Type returns the event type.
func (e BaseEvent) Type() EventType {
	return e.EventType
}

// Timestamp returns when the event occurred.
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// Transition wraps a phase change with its occurrence time.
type Transition struct {
	BaseEvent
	timer.TransitionEvent
}

// NewTransition builds a Transition event stamped with the current time.
func NewTransition(te timer.TransitionEvent) *Transition {
	return &Transition{
		BaseEvent:       BaseEvent{EventType: EventTransition, Time: time.Now()},
		TransitionEvent: te,
	}
}
