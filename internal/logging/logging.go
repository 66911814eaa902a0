package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileName is the log file name inside the shx base directory.
const FileName = "cdx.log"

// ParseLevel maps a config string to a slog level. Unknown values mean warn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a text logger on w. Every record carries the invocation id,
// so lines from one cdx run can be grouped in a shared log file.
func New(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("invocation", uuid.New().String())
}

// Open appends to the log file at path. If the file cannot be opened the
// logger falls back to stderr and the error is returned alongside it.
func Open(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fallback(level, fmt.Errorf("failed to create log directory: %w", err))
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fallback(level, fmt.Errorf("failed to open log file: %w", err))
	}
	return New(file, level), file, nil
}

func fallback(level slog.Level, err error) (*slog.Logger, io.Closer, error) {
	logger := New(os.Stderr, level)
	logger.Warn("falling back to stderr logging", "err", err)
	return logger, io.NopCloser(nil), err
}
