// Package store persists timer state as a JSON snapshot on disk.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mstead/pomo/internal/timer"
)

// snapshotVersion is bumped on incompatible layout changes. Snapshots with
// a different version are treated like corrupt files.
const snapshotVersion = 1

// snapshot is the on-disk layout.
type snapshot struct {
	Version           int         `json:"version"`
	Phase             timer.Phase `json:"phase"`
	ElapsedSecs       float64     `json:"elapsed_secs"`
	WorkSecs          int         `json:"work_secs"`
	ShortBreakSecs    int         `json:"short_break_secs"`
	LongBreakSecs     int         `json:"long_break_secs"`
	Iteration         int         `json:"iteration"`
	SessionsCompleted int         `json:"sessions_completed"`
	Running           bool        `json:"running"`
	SavedAt           time.Time   `json:"saved_at"`
}

// Store reads and writes timer state snapshots at a fixed path.
type Store struct {
	path   string
	logger *slog.Logger
}

// New creates a Store writing to path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load returns the persisted state, or def when no usable snapshot exists.
// A corrupt or incompatible file is moved aside so the next Save starts
// fresh; Load itself never fails the caller.
func (s *Store) Load(def timer.State) timer.State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read state file failed", "path", s.path, "error", err)
		}
		return def
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("corrupt state file, starting fresh", "path", s.path, "error", err)
		s.backupCorrupt()
		return def
	}
	if snap.Version != snapshotVersion {
		s.logger.Warn("incompatible state file version, starting fresh",
			"path", s.path, "version", snap.Version, "want", snapshotVersion)
		s.backupCorrupt()
		return def
	}

	st := timer.State{
		Phase:   snap.Phase,
		Elapsed: time.Duration(snap.ElapsedSecs * float64(time.Second)),
		Durations: timer.Durations{
			Work:       time.Duration(snap.WorkSecs) * time.Second,
			ShortBreak: time.Duration(snap.ShortBreakSecs) * time.Second,
			LongBreak:  time.Duration(snap.LongBreakSecs) * time.Second,
		},
		Iteration:         snap.Iteration,
		SessionsCompleted: snap.SessionsCompleted,
		Running:           snap.Running,
	}

	// Snapshots carry the durations so set-time changes survive restarts,
	// but a snapshot with nonsense durations is not worth recovering.
	if !st.Durations.Valid() || st.Iteration < 0 || st.Iteration > 3 || st.SessionsCompleted < 0 {
		s.logger.Warn("state file fails validation, starting fresh", "path", s.path)
		s.backupCorrupt()
		return def
	}
	if st.Elapsed < 0 {
		st.Elapsed = 0
	}
	if max := st.Duration(); st.Elapsed > max {
		st.Elapsed = max
	}
	return st
}

// Save writes the state atomically: a uniquely named temp file in the same
// directory, then rename over the destination. Concurrent saves race only
// on which rename lands last, never on the bytes being written.
func (s *Store) Save(st timer.State) error {
	snap := snapshot{
		Version:           snapshotVersion,
		Phase:             st.Phase,
		ElapsedSecs:       st.Elapsed.Seconds(),
		WorkSecs:          int(st.Durations.Work / time.Second),
		ShortBreakSecs:    int(st.Durations.ShortBreak / time.Second),
		LongBreakSecs:     int(st.Durations.LongBreak / time.Second),
		Iteration:         st.Iteration,
		SessionsCompleted: st.SessionsCompleted,
		Running:           st.Running,
		SavedAt:           time.Now().UTC(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create state temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("chmod state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename state file: %w", err)
	}
	return nil
}

// backupCorrupt moves the unusable state file aside.
func (s *Store) backupCorrupt() {
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Warn("backup corrupt state file failed", "path", s.path, "error", err)
	}
}
