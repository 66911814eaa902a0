package history

import (
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cdx/internal/dir"
	"cdx/internal/model"
)

// FileName is the history file name inside the shx base directory.
const FileName = "cdx.db"

const formatVersion = 1

var (
	// ErrCorrupt is returned when the history file cannot be read back.
	ErrCorrupt = errors.New("corrupt history store")
	// ErrIO is returned when the history file cannot be written.
	ErrIO = dir.ErrIO
)

// History is the ordered list of visited directories, oldest first.
// It holds at most one entry per canonical path.
type History struct {
	path    string
	maxSize int
	entries []model.Entry
	logger  *slog.Logger
}

// snapshot is the on-disk layout of the history file.
type snapshot struct {
	Version int
	Entries []model.Entry
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger used for store events.
func WithLogger(l *slog.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// New creates an empty history backed by path.
// An empty path keeps the history in memory only; Save is then a no-op.
// maxSize <= 0 disables retention trimming.
func New(path string, maxSize int, opts ...Option) *History {
	h := &History{
		path:    path,
		maxSize: maxSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Open loads the history stored at path.
// A missing file yields an empty history; anything unreadable is ErrCorrupt.
func Open(path string, maxSize int, opts ...Option) (*History, error) {
	h := New(path, maxSize, opts...)

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			h.logger.Debug("history: no history file yet", "path", path)
			return h, nil
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrCorrupt, path, err)
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, path, err)
	}
	if snap.Version != formatVersion {
		return nil, fmt.Errorf("%w: %s has format version %d, want %d", ErrCorrupt, path, snap.Version, formatVersion)
	}

	h.entries = snap.Entries
	h.logger.Debug("history: loaded", "path", path, "entries", len(h.entries))
	return h, nil
}

// Path returns the backing file path.
func (h *History) Path() string {
	return h.path
}

// Len returns the number of stored entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []model.Entry {
	out := make([]model.Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Read returns up to n of the most recent entries, most recent first.
// The result is a copy; changing it does not touch the history.
func (h *History) Read(n int) []model.Entry {
	if n <= 0 {
		return []model.Entry{}
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}

	out := make([]model.Entry, 0, n)
	for i := len(h.entries) - 1; i >= len(h.entries)-n; i-- {
		out = append(out, h.entries[i])
	}
	return out
}

// AppendLast records e as the most recent entry.
// Any older entry with the same canonical path is removed first.
func (h *History) AppendLast(e model.Entry) {
	kept := h.entries[:0]
	for _, existing := range h.entries {
		if existing.Canonical == e.Canonical {
			continue
		}
		kept = append(kept, existing)
	}
	h.entries = append(kept, e)
}

// Save writes the whole history to its file, replacing the previous content.
// Only the newest maxSize entries are written. The in-memory list is left
// untouched when the write fails.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}

	entries := h.entries
	if h.maxSize > 0 && len(entries) > h.maxSize {
		h.logger.Debug("history: trimming", "from", len(entries), "to", h.maxSize)
		entries = entries[len(entries)-h.maxSize:]
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0750); err != nil {
		return fmt.Errorf("%w: create history directory: %v", ErrIO, err)
	}

	// The file is replaced whole, never written in place
	tempPath := h.path + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrIO, tempPath, err)
	}

	snap := snapshot{Version: formatVersion, Entries: entries}
	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("%w: encode history: %v", ErrIO, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: close %s: %v", ErrIO, tempPath, err)
	}
	if err := os.Rename(tempPath, h.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("%w: replace %s: %v", ErrIO, h.path, err)
	}

	if len(entries) != len(h.entries) {
		h.entries = append([]model.Entry(nil), entries...)
	}
	h.logger.Debug("history: saved", "path", h.path, "entries", len(entries))
	return nil
}
