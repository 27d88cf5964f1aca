// End-to-end tests covering the daemon, poll loop, RPC client, state
// persistence, and frame publishing working together.
package daemon

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/event"
	"github.com/mstead/pomo/internal/store"
	"github.com/mstead/pomo/internal/timer"
)

func TestIntegration_CommandsThroughSocket(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Socket = shortSocketPath(t)
	cfg.Paths.State = filepath.Join(tmp, "state.json")
	cfg.Paths.Frame = filepath.Join(tmp, "frame.png")
	cfg.Timer.PollInterval = 20 * time.Millisecond

	st := store.New(cfg.Paths.State, nil)
	engine := timer.New(timer.State{
		Phase: timer.Work,
		Durations: timer.Durations{
			Work:       1500 * time.Second,
			ShortBreak: 300 * time.Second,
			LongBreak:  900 * time.Second,
		},
	}, timer.WithStore(st))

	d := New(cfg, engine, nil, renderConfigForTest(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverDone := make(chan error, 1)
	go func() { serverDone <- d.Start(ctx) }()

	loopDone := make(chan struct{})
	go func() {
		d.RunLoop(ctx)
		close(loopDone)
	}()

	waitForSocket(t, cfg.Paths.Socket, 2*time.Second)

	client := NewClient(cfg.Paths.Socket)

	// Start the timer, let the poll loop advance it.
	if _, err := client.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status, err := client.Status()
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if status.Timer.ElapsedSecs > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Timer.ElapsedSecs == 0 {
		t.Fatal("poll loop did not advance the running timer")
	}

	// Skip to the break, verify the ack and that the command persisted.
	ack, err := client.Skip()
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if ack.Phase != "short_break" {
		t.Errorf("phase after skip = %q, want short_break", ack.Phase)
	}

	loaded := st.Load(timer.State{Durations: engine.Snapshot().Durations})
	if loaded.Phase != timer.ShortBreak {
		t.Errorf("persisted phase = %v, want ShortBreak", loaded.Phase)
	}

	// The frame file must be a decodable PNG of the configured size.
	f, err := os.Open(cfg.Paths.Frame)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	img, err := png.Decode(f)
	_ = f.Close()
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
		t.Errorf("frame size = %v, want 32x32", img.Bounds())
	}

	// Shutdown stops both the server and the poll loop.
	if err := client.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-serverDone:
		if err != nil {
			t.Errorf("server exited with error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("server did not exit after shutdown")
	}

	select {
	case <-loopDone:
	case <-time.After(2 * time.Second):
		t.Error("poll loop did not exit after shutdown")
	}
}

func TestIntegration_NaturalTransitionEmitsEvent(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Socket = shortSocketPath(t)
	cfg.Paths.Frame = ""
	cfg.Timer.PollInterval = 10 * time.Millisecond

	engine := timer.New(timer.State{
		Phase:   timer.Work,
		Running: true,
		Durations: timer.Durations{
			Work:       50 * time.Millisecond,
			ShortBreak: time.Hour,
			LongBreak:  time.Hour,
		},
	}, timer.WithAutoStart(false, true))

	router := event.NewRouter(event.DefaultBufferSize)
	defer router.Close()
	sub := router.Subscribe()

	d := New(cfg, engine, router, renderConfigForTest(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.RunLoop(ctx)
		close(done)
	}()

	select {
	case ev := <-sub:
		tr, ok := ev.(*event.Transition)
		if !ok {
			t.Fatalf("expected *event.Transition, got %T", ev)
		}
		if tr.From != timer.Work || tr.To != timer.ShortBreak || tr.Cause != timer.Natural {
			t.Errorf("transition = %+v", tr.TransitionEvent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no transition event within timeout")
	}

	cancel()
	<-done
}

func TestIntegration_RestartRestoresState(t *testing.T) {
	tmp := t.TempDir()
	statePath := filepath.Join(tmp, "state.json")

	durations := timer.Durations{
		Work:       1500 * time.Second,
		ShortBreak: 300 * time.Second,
		LongBreak:  900 * time.Second,
	}

	// First run: advance and stop mid-phase.
	st := store.New(statePath, nil)
	engine := timer.New(timer.State{Phase: timer.Work, Durations: durations}, timer.WithStore(st))
	if _, _, err := engine.Apply(timer.Command{Op: timer.Start}); err != nil {
		t.Fatalf("start: %v", err)
	}
	engine.Tick(90 * time.Second)
	if _, _, err := engine.Apply(timer.Command{Op: timer.Stop}); err != nil {
		t.Fatalf("stop: %v", err)
	}

	// Second run: a fresh engine seeded from disk picks up where we left off.
	restored := store.New(statePath, nil).Load(timer.State{Phase: timer.Work, Durations: durations})
	if restored.Elapsed != 90*time.Second {
		t.Errorf("restored elapsed = %v, want 90s", restored.Elapsed)
	}
	if restored.Running {
		t.Error("restored state should be stopped")
	}
}
