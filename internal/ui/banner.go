package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Banner is the ASCII art header of the progress view
var Banner = []string{
	"    _  _____ _____    _ ____  ",
	"   / \\|_   _|_   _|  | |  _ \\ ",
	"  / _ \\ | |   | | _  | | |_) |",
	" / ___ \\| |   | || |_| |  _ < ",
	"/_/   \\_\\_|   |_| \\___/|_| \\_\\",
}

// RenderBanner returns the styled banner as a string
func RenderBanner(dryRun bool) string {
	bannerStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	var lines []string
	for _, line := range Banner {
		lines = append(lines, bannerStyle.Render(line))
	}

	if dryRun {
		lines = append(lines, "")
		warningStyle := lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
		lines = append(lines, warningStyle.Render("⚠ DRY RUN MODE"))
	}

	return strings.Join(lines, "\n")
}
