package cdx

import (
	"errors"

	"cdx/internal/dir"
	"cdx/internal/history"
)

// Error taxonomy. Every resolution failure wraps exactly one of these.
var (
	ErrNotFound      = dir.ErrNotFound
	ErrNotADirectory = dir.ErrNotADirectory
	ErrIO            = dir.ErrIO
	ErrCorruptStore  = history.ErrCorrupt
	ErrOutOfRange    = errors.New("revision out of range")
	ErrAborted       = errors.New("selection aborted")
)
