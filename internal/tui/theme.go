package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme picks a style for each field the listing and picker render.
// Display code only sees styles; entries are passed through unchanged.
type Theme interface {
	Index() lipgloss.Style
	Canonical() lipgloss.Style
	Raw() lipgloss.Style
	Selected() lipgloss.Style
	Prompt() lipgloss.Style
	Help() lipgloss.Style
}

// ColorfulTheme is the default theme.
type ColorfulTheme struct {
	index     lipgloss.Style
	canonical lipgloss.Style
	raw       lipgloss.Style
	selected  lipgloss.Style
	prompt    lipgloss.Style
	help      lipgloss.Style
}

// NewColorfulTheme returns the default colors.
func NewColorfulTheme() ColorfulTheme {
	return ColorfulTheme{
		index:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")), // Light yellow
		canonical: lipgloss.NewStyle().Foreground(lipgloss.Color("10")), // Light green
		raw:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")), // Light blue
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")),
		prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true), // Light red
		help:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (t ColorfulTheme) Index() lipgloss.Style     { return t.index }
func (t ColorfulTheme) Canonical() lipgloss.Style { return t.canonical }
func (t ColorfulTheme) Raw() lipgloss.Style       { return t.raw }
func (t ColorfulTheme) Selected() lipgloss.Style  { return t.selected }
func (t ColorfulTheme) Prompt() lipgloss.Style    { return t.prompt }
func (t ColorfulTheme) Help() lipgloss.Style      { return t.help }

// PlainTheme renders everything unstyled except the picker cursor row.
type PlainTheme struct{}

func (PlainTheme) Index() lipgloss.Style     { return lipgloss.NewStyle() }
func (PlainTheme) Canonical() lipgloss.Style { return lipgloss.NewStyle() }
func (PlainTheme) Raw() lipgloss.Style       { return lipgloss.NewStyle() }
func (PlainTheme) Selected() lipgloss.Style  { return lipgloss.NewStyle().Reverse(true) }
func (PlainTheme) Prompt() lipgloss.Style    { return lipgloss.NewStyle() }
func (PlainTheme) Help() lipgloss.Style      { return lipgloss.NewStyle() }

// ThemeByName maps a config value to a theme. Unknown names get the default.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "plain", "none":
		return PlainTheme{}
	default:
		return NewColorfulTheme()
	}
}
