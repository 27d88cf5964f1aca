package event

import (
	"log/slog"
	"sync"
)

// DefaultBufferSize is the subscriber channel buffer used when no explicit
// size is given.
const DefaultBufferSize = 100

type subscriberEntry struct {
	ch chan Event
}

// Router fans emitted events out to subscriber channels. The daemon loop
// and command handlers emit; the dispatcher and tests subscribe.
type Router struct {
	subscribers []subscriberEntry
	bufferSize  int
	mu          sync.RWMutex
	closed      bool
}

// NewRouter creates a Router. A bufferSize of 0 or less falls back to
// DefaultBufferSize.
func NewRouter(bufferSize int) *Router {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Router{
		bufferSize: bufferSize,
	}
}

// Emit sends the event to every subscriber without blocking: a full
// channel drops the event with a warning rather than stalling the timer
// loop. Emit after Close is a no-op.
func (r *Router) Emit(event Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return
	}

	for _, sub := range r.subscribers {
		select {
		case sub.ch <- event:
		default:
			slog.Warn("event dropped: subscriber channel full",
				"event_type", event.Type(),
			)
		}
	}
}

// Subscribe returns a channel receiving all emitted events, buffered at
// the router's default size. The channel closes when the router closes.
func (r *Router) Subscribe() <-chan Event {
	return r.SubscribeBuffered(r.bufferSize)
}

// SubscribeBuffered is Subscribe with an explicit buffer size, for
// subscribers that drain slowly and cannot afford drops.
func (r *Router) SubscribeBuffered(size int) <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, size)
	r.subscribers = append(r.subscribers, subscriberEntry{ch: ch})
	return ch
}

// Unsubscribe removes the subscription and closes its channel. Unknown or
// already-removed channels are ignored.
func (r *Router) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub.ch == ch {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close closes every subscriber channel and marks the router closed.
// Safe to call more than once.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	r.closed = true
	for _, sub := range r.subscribers {
		close(sub.ch)
	}
	r.subscribers = nil
}
