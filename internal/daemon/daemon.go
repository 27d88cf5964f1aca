// Package daemon provides the long-lived timer process with external
// control via Unix socket RPC.
package daemon

import (
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/event"
	"github.com/mstead/pomo/internal/render"
	"github.com/mstead/pomo/internal/timer"
)

// Daemon owns the single engine instance. The poll loop and the socket
// handlers both mutate it, serialized by the engine's own mutex; the
// daemon adds the transport, frame publishing, and event fan-out around it.
type Daemon struct {
	config    *config.Config
	engine    *timer.Engine
	router    *event.Router
	renderCfg render.Config
	framePath string
	sockPath  string
	startTime time.Time
	logger    *slog.Logger

	running  bool
	listener net.Listener
	mu       sync.RWMutex

	renderWarn   sync.Once
	frameMu      sync.Mutex
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

// New creates a Daemon around an existing engine. The router may be nil
// when no transition subscribers exist (tests, mostly).
func New(cfg *config.Config, engine *timer.Engine, router *event.Router, renderCfg render.Config, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Daemon{
		config:    cfg,
		engine:    engine,
		router:    router,
		renderCfg: renderCfg,
		framePath: cfg.Paths.Frame,
		sockPath:  cfg.Paths.Socket,
		logger:    logger,
		shutdown:  make(chan struct{}),
	}
}

// requestShutdown asks the daemon to exit; used by the shutdown RPC.
func (d *Daemon) requestShutdown() {
	d.shutdownOnce.Do(func() { close(d.shutdown) })
}

// Running returns whether the daemon is currently serving.
func (d *Daemon) Running() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// Engine returns the underlying engine for testing.
func (d *Daemon) Engine() *timer.Engine {
	return d.engine
}

// StartTime returns when the daemon was started.
func (d *Daemon) StartTime() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.startTime
}

// SocketPath returns the Unix socket path.
func (d *Daemon) SocketPath() string {
	return d.sockPath
}

// publishFrame renders the snapshot and writes the frame file for the host
// display to pick up. Render or write failures affect only this frame; the
// previous published frame stays in place. Serialized: the poll loop and
// concurrent RPC handlers all publish here, and interleaved renames would
// let an older snapshot overwrite a newer one.
func (d *Daemon) publishFrame(st timer.State) {
	if d.framePath == "" {
		return
	}

	d.frameMu.Lock()
	defer d.frameMu.Unlock()
	img, err := render.Render(st, d.renderCfg)
	if err != nil {
		d.renderWarn.Do(func() {
			d.logger.Warn("render failed, frame not updated", "error", err)
		})
		return
	}
	if err := render.WriteFrame(d.framePath, img); err != nil {
		d.logger.Warn("write frame failed", "path", d.framePath, "error", err)
	}
}

// emitTransitions forwards engine events to the router.
func (d *Daemon) emitTransitions(events []timer.TransitionEvent) {
	if d.router == nil {
		return
	}
	for _, te := range events {
		d.router.Emit(event.NewTransition(te))
	}
}
