package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// Update handles events.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WindowSize = msg
		m.InputBuffer.Width = max(msg.Width-4, 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Aborted = true
			return m, tea.Quit
		case tea.KeyEnter:
			if len(m.FilteredIndices) == 0 {
				return m, nil
			}
			chosen := m.Items[m.FilteredIndices[m.SelectedIdx]]
			m.Chosen = &chosen
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
			}
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
			if m.SelectedIdx < len(m.FilteredIndices)-1 {
				m.SelectedIdx++
			}
			return m, nil
		}

		before := m.InputBuffer.Value()
		m.InputBuffer, cmd = m.InputBuffer.Update(msg)
		if m.InputBuffer.Value() != before {
			m.SelectedIdx = 0
			m.performFilter()
		}
		return m, cmd
	}

	m.InputBuffer, cmd = m.InputBuffer.Update(msg)
	return m, cmd
}

// performFilter narrows the visible items to fuzzy matches on the canonical path.
func (m *PickerModel) performFilter() {
	term := m.InputBuffer.Value()
	if term == "" {
		m.FilteredIndices = make([]int, len(m.Items))
		for i := range m.Items {
			m.FilteredIndices[i] = i
		}
	} else {
		paths := make([]string, len(m.Items))
		for i, item := range m.Items {
			paths[i] = item.Entry.Canonical
		}
		matches := fuzzy.Find(term, paths)
		m.FilteredIndices = make([]int, len(matches))
		for i, match := range matches {
			m.FilteredIndices[i] = match.Index
		}
	}

	// Bounds check
	if m.SelectedIdx >= len(m.FilteredIndices) {
		m.SelectedIdx = max(len(m.FilteredIndices)-1, 0)
	}
}

var _ tea.Model = PickerModel{}
