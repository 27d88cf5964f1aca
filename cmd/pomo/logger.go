package main

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mstead/pomo/internal/config"
)

// FileLoggerResult contains the results of setting up file-based logging.
type FileLoggerResult struct {
	Logger   *slog.Logger
	LogFile  io.WriteCloser
	FilePath string
}

// Close closes the log file if it was opened.
func (r *FileLoggerResult) Close() error {
	if r.LogFile != nil {
		return r.LogFile.Close()
	}
	return nil
}

// SetupFileLogger creates a logger that writes to a rotating file instead of
// stderr. Daemon and TUI modes use this so log output never reaches the
// terminal. Uses lumberjack for automatic log rotation based on the provided
// config.
func SetupFileLogger(logPath string, level slog.Leveler, rotationCfg config.LogRotationConfig) (*FileLoggerResult, error) {
	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    rotationCfg.MaxSizeMB,
		MaxBackups: rotationCfg.MaxBackups,
		MaxAge:     rotationCfg.MaxAgeDays,
		Compress:   rotationCfg.Compress,
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: level}))

	return &FileLoggerResult{
		Logger:   logger,
		LogFile:  logWriter,
		FilePath: logPath,
	}, nil
}

// SetupLoggerWithWriter creates a logger that writes to the given writer.
// This is useful for testing where we want to capture the output.
func SetupLoggerWithWriter(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
