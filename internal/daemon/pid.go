package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// PIDFile guards against two timer processes claiming the same project.
// The file is held under an exclusive flock for the life of the process,
// so a crash releases it automatically and only a stale file remains.
type PIDFile struct {
	path string
	file *os.File
}

// NewPIDFile creates a PIDFile for the given path.
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the PID file path.
func (p *PIDFile) Path() string {
	return p.path
}

// Write claims the PID file: takes the flock and records the current pid.
// Fails when another process already holds the lock.
func (p *PIDFile) Write() error {
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create pid directory: %w", err)
	}

	file, err := os.OpenFile(p.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open pid file: %w", err)
	}

	// Non-blocking: a held lock means a live process, not a wait.
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if err == syscall.EWOULDBLOCK {
			return fmt.Errorf("daemon already running (pid file locked)")
		}
		return fmt.Errorf("lock pid file: %w", err)
	}

	if err := file.Truncate(0); err != nil {
		p.unlockAndClose(file)
		return fmt.Errorf("truncate pid file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		p.unlockAndClose(file)
		return fmt.Errorf("seek pid file: %w", err)
	}
	if _, err := fmt.Fprintf(file, "%d\n", os.Getpid()); err != nil {
		p.unlockAndClose(file)
		return fmt.Errorf("write pid: %w", err)
	}
	if err := file.Sync(); err != nil {
		p.unlockAndClose(file)
		return fmt.Errorf("sync pid file: %w", err)
	}

	p.file = file
	return nil
}

// Read returns the recorded pid, or 0 when the file is missing or garbled.
func (p *PIDFile) Read() int {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0
	}
	return pid
}

// Remove releases the lock and deletes the PID file.
func (p *PIDFile) Remove() error {
	if p.file != nil {
		p.unlockAndClose(p.file)
		p.file = nil
	}
	_ = os.Remove(p.path)
	return nil
}

func (p *PIDFile) unlockAndClose(file *os.File) {
	_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	_ = file.Close()
}

// IsProcessRunning reports whether pid names a live process, probed with
// signal 0.
func IsProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess succeeds unconditionally on Unix; the signal is the probe.
	err = process.Signal(syscall.Signal(0))
	return err == nil
}

// IsRunning reports whether the recorded pid is alive.
func (p *PIDFile) IsRunning() bool {
	pid := p.Read()
	return IsProcessRunning(pid)
}

// CleanupStale removes leftover PID and socket files from a crashed run.
// A live recorded process leaves everything in place.
func (p *PIDFile) CleanupStale(socketPath string) {
	if p.IsRunning() {
		return
	}
	_ = os.Remove(p.path)
	if socketPath != "" {
		_ = os.Remove(socketPath)
	}
}
