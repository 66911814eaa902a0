package tui

import (
	"fmt"
	"os"

	"cdx/internal/cdx"
	"cdx/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// Picker runs the interactive selection as a bubbletea program.
// It draws on stderr so stdout stays free for the resolved path.
type Picker struct {
	theme   Theme
	options []tea.ProgramOption
}

// NewPicker creates a picker. Extra options are appended to the defaults.
func NewPicker(theme Theme, opts ...tea.ProgramOption) *Picker {
	defaults := []tea.ProgramOption{
		tea.WithOutput(os.Stderr),
		tea.WithAltScreen(),
	}
	return &Picker{
		theme:   theme,
		options: append(defaults, opts...),
	}
}

// Pick shows items and returns the chosen entry unchanged.
func (p *Picker) Pick(items []model.Indexed) (model.Entry, error) {
	m := NewPickerModel(items, p.theme)
	final, err := tea.NewProgram(m, p.options...).Run()
	if err != nil {
		return model.Entry{}, fmt.Errorf("run picker: %w", err)
	}
	return result(final)
}

func result(final tea.Model) (model.Entry, error) {
	m, ok := final.(PickerModel)
	if !ok {
		return model.Entry{}, fmt.Errorf("unexpected picker model %T", final)
	}
	if m.Aborted || m.Chosen == nil {
		return model.Entry{}, fmt.Errorf("%w: no directory picked", cdx.ErrAborted)
	}
	return m.Chosen.Entry, nil
}

var _ cdx.Picker = (*Picker)(nil)
