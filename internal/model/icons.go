package model

// Centralized icons for the listing and picker
// Using simple single-width characters for consistent terminal rendering
const (
	IconCurrent  = "●" // Most recent entry (where the shell is now)
	IconEntry    = " " // Space (regular entry - no icon to reduce noise)
	IconCursor   = ">" // Picker cursor
	IconShortcut = "^" // Sigil that marks shortcut, revision and picker input
	IconSelected = "(selected)"
)
