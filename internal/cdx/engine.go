package cdx

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"cdx/internal/dir"
	"cdx/internal/model"
)

// Store is the part of the history the engine reads and mutates.
type Store interface {
	// Read returns up to n entries, most recent first.
	Read(n int) []model.Entry
	// AppendLast records an entry as most recent, dropping any older entry
	// with the same canonical path.
	AppendLast(e model.Entry)
}

// Picker lets the user choose one entry out of the recency window.
// It returns the chosen entry unchanged, or an error wrapping ErrAborted.
type Picker interface {
	Pick(items []model.Indexed) (model.Entry, error)
}

// Options configures an Engine.
type Options struct {
	SearchSize int    // size of the recency window
	Home       string // target of an empty Direct request
	WorkDir    string // base for relative paths; empty means the process cwd
	Store      Store
	Picker     Picker
	Logger     *slog.Logger
}

// Engine turns requests into validated directories and records them.
type Engine struct {
	searchSize int
	home       string
	workDir    string
	store      Store
	picker     Picker
	logger     *slog.Logger
}

// NewEngine creates an engine. A non-positive search size is treated as 1.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.SearchSize
	if size < 1 {
		size = 1
	}
	return &Engine{
		searchSize: size,
		home:       opts.Home,
		workDir:    opts.WorkDir,
		store:      opts.Store,
		picker:     opts.Picker,
		logger:     logger,
	}
}

// SearchSize returns the size of the recency window.
func (e *Engine) SearchSize() int {
	return e.searchSize
}

// List returns the recency window paired with revision numbers.
// Index 0 is the most recent entry.
func (e *Engine) List() []model.Indexed {
	return model.Index(e.store.Read(e.searchSize))
}

// Resolve finds the directory req names, records it in history and returns
// its canonical path. The history is left untouched on error.
func (e *Engine) Resolve(req Request) (string, error) {
	var (
		path string
		err  error
	)
	switch r := req.(type) {
	case Direct:
		path, err = e.direct(r)
	case Shortcut:
		path, err = e.shortcut(r)
	case Revision:
		path, err = e.revision(r)
	case Interactive:
		path, err = e.interactive(r)
	default:
		err = fmt.Errorf("unsupported request %T", req)
	}

	if err != nil {
		e.logger.Debug("cdx: resolve failed", "request", req, "err", err)
		return "", err
	}
	e.logger.Info("cdx: resolved", "request", req, "path", path)
	return path, nil
}

func (e *Engine) direct(r Direct) (string, error) {
	var target string
	switch r.Input {
	case "":
		if e.home == "" {
			return "", fmt.Errorf("%w: home directory is not set", ErrNotFound)
		}
		target = e.home
	case "-":
		return e.revision(Revision{N: 1})
	default:
		target = dir.ExpandTilde(r.Input, e.home)
		if !filepath.IsAbs(target) && e.workDir != "" {
			target = filepath.Join(e.workDir, target)
		}
	}

	d, err := dir.Validate(target)
	if err != nil {
		return "", err
	}
	c, err := d.Canonicalize()
	if err != nil {
		return "", err
	}

	e.store.AppendLast(model.NewEntry(r.Raw(), c.Path()))
	return c.Path(), nil
}

func (e *Engine) shortcut(r Shortcut) (string, error) {
	for _, entry := range e.store.Read(e.searchSize) {
		if dir.HasSuffix(entry.Canonical, r.Suffix) {
			return e.revisit(entry, r.Raw())
		}
	}
	return "", fmt.Errorf("%w: no directory in the last %d matches shortcut %q", ErrNotFound, e.searchSize, r.Suffix)
}

// revision looks past the most recent entry, which is the directory the
// shell is in now, so revision 1 is the one visited before it.
func (e *Engine) revision(r Revision) (string, error) {
	if r.N < 1 || r.N > e.searchSize {
		return "", fmt.Errorf("%w: revision %d (0 < r <= %d)", ErrOutOfRange, r.N, e.searchSize)
	}

	window := e.store.Read(e.searchSize + 1)
	if r.N >= len(window) {
		return "", fmt.Errorf("%w: no history entry for revision %d (%d recorded)", ErrNotFound, r.N, len(window))
	}
	return e.revisit(window[r.N], r.Raw())
}

func (e *Engine) interactive(r Interactive) (string, error) {
	window := e.store.Read(e.searchSize)
	if len(window) == 0 {
		return "", fmt.Errorf("%w: history is empty", ErrNotFound)
	}
	if e.picker == nil {
		return "", errors.New("interactive selection is not available")
	}

	chosen, err := e.picker.Pick(model.Index(window))
	if err != nil {
		return "", err
	}
	return e.revisit(chosen, r.Raw())
}

// revisit re-records a history entry under a new raw tag, provided its
// directory still exists.
func (e *Engine) revisit(entry model.Entry, raw string) (string, error) {
	if _, err := dir.Validate(entry.Canonical); err != nil {
		return "", err
	}
	e.store.AppendLast(entry.WithRaw(raw))
	return entry.Canonical, nil
}
