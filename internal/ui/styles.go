package ui

import (
	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	ColorCyan     = lipgloss.Color("#00FFFF")
	ColorGreen    = lipgloss.Color("#00FF00")
	ColorYellow   = lipgloss.Color("#FFFF00")
	ColorRed      = lipgloss.Color("#FF0000")
	ColorMagenta  = lipgloss.Color("#FF00FF")
	ColorBlue     = lipgloss.Color("#5555FF")
	ColorPurple   = lipgloss.Color("#AA55FF")
	ColorOrange   = lipgloss.Color("#FFA500")
	ColorWhite    = lipgloss.Color("#FFFFFF")
	ColorDarkGray = lipgloss.Color("8") // ANSI 8
)

// SetColorMode forces plain output when noColor is set. Otherwise the
// profile detected from the terminal is kept.
func SetColorMode(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// FindingColor returns the color used for a gate finding
func FindingColor(kind models.FindingKind) lipgloss.Color {
	switch kind {
	case models.FindingBlocking:
		return ColorRed
	case models.FindingExempt:
		return ColorYellow
	case models.FindingUnreachable:
		return ColorOrange
	default:
		return ColorGreen
	}
}
