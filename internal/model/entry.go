package model

import "fmt"

// Version is the cdx release string.
const Version = "0.3.0"

// Entry represents a single recorded directory change.
type Entry struct {
	Raw       string // What the user typed (e.g. "../src", "^proj", "^2")
	Canonical string // Absolute, symlink-free directory path
}

// NewEntry creates an entry for a canonical directory reached through raw.
func NewEntry(raw, canonical string) Entry {
	return Entry{Raw: raw, Canonical: canonical}
}

// WithRaw returns a copy of the entry re-tagged with a new raw input.
// The canonical path is kept as is.
func (e Entry) WithRaw(raw string) Entry {
	e.Raw = raw
	return e
}

func (e Entry) String() string {
	return fmt.Sprintf("%s <%s>", e.Canonical, e.Raw)
}

// Indexed pairs an entry with its revision number in the recency window.
// Index 0 is the most recent entry.
type Indexed struct {
	Index int
	Entry Entry
}

// Index pairs each entry with its position, in order.
func Index(entries []Entry) []Indexed {
	out := make([]Indexed, len(entries))
	for i, e := range entries {
		out[i] = Indexed{Index: i, Entry: e}
	}
	return out
}
