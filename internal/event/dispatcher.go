package event

import (
	"context"
	"log/slog"
)

// Notifier receives phase transitions in the order they occurred.
// Downstream policy (which causes warrant a sound, a desktop notification,
// and so on) lives in the implementation, not in the dispatcher.
type Notifier interface {
	Notify(*Transition)
}

// Dispatcher fans transition events out from the router to notifiers.
// It forwards every event unfiltered, tagged with phase and cause.
type Dispatcher struct {
	router    *Router
	notifiers []Notifier
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher forwarding to the given notifiers.
func NewDispatcher(router *Router, logger *slog.Logger, notifiers ...Notifier) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		router:    router,
		notifiers: notifiers,
		logger:    logger,
	}
}

// Run subscribes to the router and forwards events until the context is
// cancelled or the router closes. It blocks; run it in its own goroutine.
func (d *Dispatcher) Run(ctx context.Context) {
	ch := d.router.Subscribe()
	defer d.router.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			tr, ok := ev.(*Transition)
			if !ok {
				continue
			}
			d.logger.Debug("dispatching transition",
				"from", tr.From, "to", tr.To, "cause", tr.Cause)
			for _, n := range d.notifiers {
				n.Notify(tr)
			}
		}
	}
}
