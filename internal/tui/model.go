package tui

import (
	"cdx/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PickerModel holds the interactive picker state.
type PickerModel struct {
	// Data
	Items []model.Indexed
	Theme Theme

	// UI State
	SelectedIdx int
	WindowSize  tea.WindowSizeMsg

	// Filter State
	InputBuffer     textinput.Model
	FilteredIndices []int // Indices into Items, best match first

	// Outcome
	Chosen  *model.Indexed
	Aborted bool
}

// NewPickerModel returns the initial state with every item visible.
func NewPickerModel(items []model.Indexed, theme Theme) PickerModel {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	m := PickerModel{
		Items:       items,
		Theme:       theme,
		InputBuffer: ti,
	}
	m.performFilter()
	return m
}

// Init starts the cursor blinking.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}
