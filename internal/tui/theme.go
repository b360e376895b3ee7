package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// TextColors and BackgroundColors are the reader palettes cycled with c
// and C. "default" leaves the terminal's own color.
var (
	TextColors       = []string{"default", "white", "amber", "green", "gray"}
	BackgroundColors = []string{"default", "black", "sepia", "navy"}
)

var colorCodes = map[string]lipgloss.Color{
	"white": lipgloss.Color("15"),
	"amber": lipgloss.Color("214"),
	"green": lipgloss.Color("114"),
	"gray":  lipgloss.Color("245"),
	"black": lipgloss.Color("0"),
	"sepia": lipgloss.Color("94"),
	"navy":  lipgloss.Color("17"),

	// book spines
	"blue":   lipgloss.Color("33"),
	"red":    lipgloss.Color("160"),
	"purple": lipgloss.Color("99"),
	"orange": lipgloss.Color("208"),
}

// nextColor returns the color after current in palette, wrapping around.
// Unknown colors restart the cycle.
func nextColor(palette []string, current string) string {
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}

// pageStyle is the style of the reading area for the given colors.
func pageStyle(text, background string) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := colorCodes[text]; ok {
		style = style.Foreground(c)
	}
	if c, ok := colorCodes[background]; ok {
		style = style.Background(c)
	}
	return style
}

// spineStyle colors the marker drawn next to a book on the shelf.
func spineStyle(cover string) lipgloss.Style {
	if c, ok := colorCodes[cover]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))
	flashStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
