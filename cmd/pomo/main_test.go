package main

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/daemon"
	"github.com/mstead/pomo/internal/timer"
)

// testSocketPath returns a unique path short enough for a Unix socket.
func testSocketPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "sock")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	path := f.Name()
	_ = f.Close()
	_ = os.Remove(path)
	t.Cleanup(func() { _ = os.Remove(path) })
	return path
}

func waitForSocket(t *testing.T, socketPath string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("unix", socketPath, 100*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("socket did not become ready within %v", timeout)
}

// `pomo start` against a live process must act as the control verb: send
// the start command and report the ack, not refuse to run.
func TestStart_ControlsRunningDaemon(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.Socket = testSocketPath(t)
	cfg.Paths.Frame = ""

	engine := timer.New(timer.State{
		Phase: timer.Work,
		Durations: timer.Durations{
			Work:       1500 * time.Second,
			ShortBreak: 300 * time.Second,
			LongBreak:  900 * time.Second,
		},
	})

	rc, err := buildRenderConfig(cfg, nil)
	if err != nil {
		t.Fatalf("buildRenderConfig failed: %v", err)
	}
	d := daemon.New(cfg, engine, nil, rc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.Start(ctx) }()
	waitForSocket(t, cfg.Paths.Socket, 2*time.Second)

	client := daemon.NewClient(cfg.Paths.Socket)
	if !client.IsRunning() {
		t.Fatal("daemon should be reachable")
	}

	if err := startExistingDaemon(client); err != nil {
		t.Fatalf("startExistingDaemon failed: %v", err)
	}
	if !engine.Snapshot().Running {
		t.Error("start against a live daemon should set its timer running")
	}
}
