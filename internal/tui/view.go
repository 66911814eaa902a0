package tui

import (
	"strings"

	"cdx/internal/model"
)

const (
	promptText = "Pick a directory to change"
	helpText   = "Use arrow keys to navigate, Enter to select, Esc to cancel"

	// Rows taken by the prompt, the filter line and the help line
	chromeHeight = 4
	// Rows shown before the first WindowSizeMsg arrives
	defaultVisible = 10
)

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.Theme.Prompt().Render("$ " + promptText))
	b.WriteString("\n")
	b.WriteString(m.Theme.Prompt().Render("> "))
	b.WriteString(m.InputBuffer.View())
	b.WriteString("\n\n")

	if len(m.FilteredIndices) == 0 {
		b.WriteString(m.Theme.Help().Render("  No matches"))
		b.WriteString("\n")
	}

	// Windowing logic, keeps the selection roughly centered
	visibleItems := defaultVisible
	if m.WindowSize.Height > 0 {
		visibleItems = m.WindowSize.Height - chromeHeight
	}
	if visibleItems < 1 {
		visibleItems = 1
	}
	startIdx := 0
	endIdx := len(m.FilteredIndices)

	if len(m.FilteredIndices) > visibleItems {
		if m.SelectedIdx >= visibleItems/2 {
			startIdx = m.SelectedIdx - (visibleItems / 2)
		}
		if startIdx+visibleItems > len(m.FilteredIndices) {
			startIdx = len(m.FilteredIndices) - visibleItems
		}
		endIdx = startIdx + visibleItems
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.Items[m.FilteredIndices[i]]
		line := FormatEntry(m.Theme, item)

		if i == m.SelectedIdx {
			b.WriteString(m.Theme.Selected().Render(model.IconCursor) + " " + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(m.Theme.Help().Render(helpText))
	return b.String()
}
