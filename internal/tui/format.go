package tui

import (
	"fmt"
	"strings"

	"cdx/internal/model"
)

// FormatEntry renders "index: canonical <raw>".
func FormatEntry(theme Theme, item model.Indexed) string {
	index := theme.Index().Render(fmt.Sprintf("%d", item.Index))
	canonical := theme.Canonical().Render(item.Entry.Canonical)
	raw := theme.Raw().Render(fmt.Sprintf("<%s>", item.Entry.Raw))
	return fmt.Sprintf("%s: %s %s", index, canonical, raw)
}

// FormatList renders one line per item, most recent first, marking the
// current directory.
func FormatList(theme Theme, items []model.Indexed) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		icon := model.IconEntry
		if item.Index == 0 {
			icon = model.IconCurrent
		}
		lines = append(lines, icon+" "+FormatEntry(theme, item))
	}
	return strings.Join(lines, "\n")
}
