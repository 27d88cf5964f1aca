package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/timer"
)

// waitForSocket waits for the socket to be ready to accept connections.
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

// shortSocketPath creates a short socket path to avoid Unix socket length limits.
// macOS has a 104 byte limit, Linux has 108 bytes.
func shortSocketPath(t *testing.T) string {
	t.Helper()
	// Create a temp file to get a unique name, then delete it
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

// newTestEngine builds an engine with short test durations.
func newTestEngine(opts ...timer.Option) *timer.Engine {
	return timer.New(timer.State{
		Phase: timer.Work,
		Durations: timer.Durations{
			Work:       1500 * time.Second,
			ShortBreak: 300 * time.Second,
			LongBreak:  900 * time.Second,
		},
	}, opts...)
}

// newTestDaemon builds a daemon with a short socket path and frame
// publishing disabled.
func newTestDaemon(t *testing.T) *Daemon {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.Socket = shortSocketPath(t)
	cfg.Paths.Frame = ""
	return New(cfg, newTestEngine(), nil, renderConfigForTest(), nil)
}

// startTestDaemon runs the daemon and waits until the socket accepts.
func startTestDaemon(t *testing.T, d *Daemon) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() {
		_ = d.Start(ctx)
	}()
	waitForSocket(t, d.SocketPath(), 2*time.Second)
}

// roundTrip sends one raw request over a fresh connection.
func roundTrip(t *testing.T, sockPath string, req Request) Response {
	t.Helper()
	conn, err := net.Dial("unix", sockPath)
	if err != nil {
		t.Fatalf("dial socket: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if err := json.NewEncoder(conn).Encode(req); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestDaemon_StartStop(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Socket = filepath.Join(tmp, "test.sock")
	cfg.Paths.Frame = ""

	d := New(cfg, newTestEngine(), nil, renderConfigForTest(), nil)

	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Start(ctx)
	}()

	waitForSocket(t, cfg.Paths.Socket, 2*time.Second)

	if !d.Running() {
		t.Error("daemon should be running after Start")
	}
	if _, err := os.Stat(cfg.Paths.Socket); os.IsNotExist(err) {
		t.Error("socket file should exist after Start")
	}

	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("daemon did not stop within timeout")
	}

	if d.Running() {
		t.Error("daemon should not be running after Stop")
	}
}

func TestDaemon_StartAlreadyRunning(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	if err := d.Start(context.Background()); err == nil {
		t.Error("expected error when starting already running daemon")
	}
}

func TestDaemon_SocketPermissions(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	info, err := os.Stat(d.SocketPath())
	if err != nil {
		t.Fatalf("stat socket: %v", err)
	}
	if perm := info.Mode().Perm(); perm != socketPermissions {
		t.Errorf("expected socket permissions %o, got %o", socketPermissions, perm)
	}
}

func TestDaemon_UnknownMethod(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	resp := roundTrip(t, d.SocketPath(), Request{Method: "explode", ID: 1})
	if resp.Error == "" {
		t.Error("expected error for unknown method")
	}
	if resp.ID != 1 {
		t.Errorf("expected ID 1, got %d", resp.ID)
	}

	// Engine state untouched by the bad request.
	if st := d.Engine().Snapshot(); st.Running || st.Elapsed != 0 {
		t.Errorf("engine state changed by unknown method: %+v", st)
	}
}

func TestDaemon_InvalidJSON(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	conn, err := net.Dial("unix", d.SocketPath())
	if err != nil {
		t.Fatalf("dial socket: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Write([]byte("not json\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var resp Response
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected error for invalid JSON")
	}
}

func TestDaemon_ToggleAcksState(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	resp := roundTrip(t, d.SocketPath(), Request{Method: "toggle", ID: 7})
	if resp.Error != "" {
		t.Fatalf("toggle failed: %s", resp.Error)
	}
	if resp.ID != 7 {
		t.Errorf("expected ID 7, got %d", resp.ID)
	}

	data, _ := json.Marshal(resp.Result)
	var st StateResponse
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if !st.Running {
		t.Error("ack should carry running=true after toggle")
	}
	if st.Phase != "work" || st.DurationSecs != 1500 {
		t.Errorf("ack state = %+v", st)
	}
}

func TestDaemon_SetTimeValidation(t *testing.T) {
	d := newTestDaemon(t)
	startTestDaemon(t, d)

	resp := roundTrip(t, d.SocketPath(), Request{
		Method: "set_time",
		Params: map[string]any{"phase": "work", "seconds": -10},
	})
	if resp.Error == "" {
		t.Error("expected error for non-positive seconds")
	}

	resp = roundTrip(t, d.SocketPath(), Request{
		Method: "set_time",
		Params: map[string]any{"phase": "nap", "seconds": 60},
	})
	if resp.Error == "" {
		t.Error("expected error for unknown phase")
	}

	// State unchanged after both failures.
	if st := d.Engine().Snapshot(); st.Durations.Work != 1500*time.Second {
		t.Errorf("durations changed by failed set_time: %+v", st.Durations)
	}
}

func TestDaemon_StopIdempotent(t *testing.T) {
	d := newTestDaemon(t)

	if err := d.Stop(); err != nil {
		t.Errorf("Stop() on non-running daemon returned error: %v", err)
	}
	if err := d.Stop(); err != nil {
		t.Errorf("second Stop() returned error: %v", err)
	}
}

func TestDaemon_CleanupStaleSocket(t *testing.T) {
	tmp := t.TempDir()
	cfg := config.Default()
	cfg.Paths.Socket = filepath.Join(tmp, "test.sock")
	cfg.Paths.Frame = ""

	// Create a stale socket file
	if err := os.WriteFile(cfg.Paths.Socket, []byte("stale"), 0644); err != nil {
		t.Fatalf("create stale socket: %v", err)
	}

	d := New(cfg, newTestEngine(), nil, renderConfigForTest(), nil)
	startTestDaemon(t, d)

	info, err := os.Stat(cfg.Paths.Socket)
	if err != nil {
		t.Fatalf("stat socket: %v", err)
	}
	if info.Mode().Type() != os.ModeSocket {
		t.Error("expected socket file, got regular file")
	}
}
