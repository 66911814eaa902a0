package dir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound is returned when a path does not exist.
	ErrNotFound = errors.New("no such directory")
	// ErrNotADirectory is returned when a path exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrIO is returned when the filesystem cannot stat or resolve a path.
	ErrIO = errors.New("i/o error")
)

// Directory is a path that was confirmed to be an existing directory.
type Directory struct {
	path string
}

// Validate checks that path exists and is a directory.
func Validate(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Directory{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Directory{}, fmt.Errorf("%w: stat %s: %v", ErrIO, path, err)
	}
	if !info.IsDir() {
		return Directory{}, fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return Directory{path: path}, nil
}

// Canonicalize resolves relative segments and symlinks to an absolute path.
// The directory may have vanished since Validate; that surfaces as ErrIO.
func (d Directory) Canonicalize() (Directory, error) {
	abs, err := filepath.Abs(d.path)
	if err != nil {
		return Directory{}, fmt.Errorf("%w: resolve %s: %v", ErrIO, d.path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Directory{}, fmt.Errorf("%w: resolve %s: %v", ErrIO, d.path, err)
	}
	return Directory{path: resolved}, nil
}

// Path returns the wrapped path string.
func (d Directory) Path() string {
	return d.path
}

func (d Directory) String() string {
	return d.path
}

// EndsWith reports whether the last components of d equal the components of suffix.
// "/a/longname" does not end with "name". An absolute suffix only matches the
// identical path, and an empty suffix never matches.
func EndsWith(d Directory, suffix string) bool {
	return HasSuffix(d.path, suffix)
}

// HasSuffix is EndsWith on plain strings.
func HasSuffix(path, suffix string) bool {
	if suffix == "" {
		return false
	}
	if filepath.IsAbs(suffix) {
		return filepath.Clean(path) == filepath.Clean(suffix)
	}

	want := components(suffix)
	have := components(path)
	if len(want) == 0 || len(want) > len(have) {
		return false
	}

	offset := len(have) - len(want)
	for i, c := range want {
		if have[offset+i] != c {
			return false
		}
	}
	return true
}

// components splits a cleaned path into its non-empty segments.
func components(path string) []string {
	cleaned := filepath.Clean(path)
	var parts []string
	for _, p := range strings.Split(cleaned, string(filepath.Separator)) {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

// ExpandTilde expands a leading ~ to home.
func ExpandTilde(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
