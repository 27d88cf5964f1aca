package daemon

import (
	"context"
	"time"
)

// RunLoop drives the engine from wall-clock time. A ticker fires at the
// configured poll interval; the delta since the last observed instant is
// fed to Tick, so coalesced or delayed ticks (system sleep, scheduler
// stalls) still advance the timer by the true elapsed time, crossing as
// many phase boundaries as needed.
//
// RunLoop blocks until the context is cancelled or the daemon is shut
// down, then flushes a final snapshot.
func (d *Daemon) RunLoop(ctx context.Context) {
	interval := d.config.Timer.PollInterval
	if interval <= 0 {
		interval = time.Second
	}

	// Publish an initial frame so the host display has something to show
	// before the first tick.
	d.publishFrame(d.engine.Snapshot())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			d.flush()
			return
		case <-d.shutdown:
			d.flush()
			return
		case now := <-ticker.C:
			delta := now.Sub(last)
			last = now

			events := d.engine.Tick(delta)
			d.emitTransitions(events)
			d.publishFrame(d.engine.Snapshot())
		}
	}
}

// flush writes a final state snapshot on the way out. Routed through the
// engine so it serializes with saves from in-flight handlers.
func (d *Daemon) flush() {
	if err := d.engine.Flush(); err != nil {
		d.logger.Warn("final state flush failed", "error", err)
	}
}
