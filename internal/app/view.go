package app

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/ui"

	"github.com/charmbracelet/lipgloss"
)

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	var sections []string

	sections = append(sections, ui.RenderBanner(m.opts.DryRun))
	sections = append(sections, "")

	switch m.screen {
	case ScreenComplete:
		sections = append(sections, m.renderComplete())
	case ScreenError:
		sections = append(sections, m.renderError())
	default:
		sections = append(sections, m.renderTagging())
	}

	sections = append(sections, "")
	sections = append(sections, m.renderStatusBar())

	return strings.Join(sections, "\n")
}

// visibleResults returns how many result lines fit under the header
func (m Model) visibleResults() int {
	bannerLines := len(ui.Banner)
	if m.opts.DryRun {
		bannerLines += 2
	}
	// header, progress bar, gaps and status bar
	available := m.height - bannerLines - 8
	if available < 3 {
		available = 3
	}
	return available
}

func (m Model) renderTagging() string {
	var lines []string

	countStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	header := fmt.Sprintf("Tagging %s %s", m.opts.Version, countStyle.Render(fmt.Sprintf("(%d/%d)", len(m.results), m.opts.Total)))
	lines = append(lines, ui.SectionHeader(header, ui.ColorMagenta))
	lines = append(lines, "")

	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	lines = append(lines, fmt.Sprintf("   %s Adding fix version to tickets...", spinnerStyle.Render(ui.Spinner(m.spinnerFrame))))
	if m.opts.Total > 0 {
		lines = append(lines, "   "+m.progress.ViewAs(float64(len(m.results))/float64(m.opts.Total)))
	}
	lines = append(lines, "")

	results := m.results
	if limit := m.visibleResults(); len(results) > limit {
		results = results[len(results)-limit:]
	}
	for _, result := range results {
		lines = append(lines, renderResult(result))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderComplete() string {
	var lines []string
	lines = append(lines, ui.SectionHeader("Complete", ui.ColorGreen))
	lines = append(lines, "")

	tagged, dryRun, tolerated, failed := models.CountTagResults(m.results)
	lines = append(lines, fmt.Sprintf("   %d tagged, %d dry-run, %d tolerated, %d failed", tagged, dryRun, tolerated, failed))
	return strings.Join(lines, "\n")
}

func (m Model) renderError() string {
	var lines []string
	lines = append(lines, ui.SectionHeader("Error", ui.ColorRed))
	lines = append(lines, "")

	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorRed)
	for _, line := range strings.Split(m.err.Error(), "\n") {
		lines = append(lines, "   "+errorStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func renderResult(result models.TagResult) string {
	name := ui.TagStatusName(result.Status)
	icon, color := ui.StatusIcon(name)
	text := name
	if reason := models.GetStatusReason(result.Status); reason != "" {
		text = truncateString(reason, 60)
	}

	iconStyle := lipgloss.NewStyle().Foreground(color)
	ticketStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	statusStyle := lipgloss.NewStyle().Foreground(color)

	return fmt.Sprintf("   %s %s: %s",
		iconStyle.Render(icon),
		ticketStyle.Render(result.Ticket),
		statusStyle.Render(text),
	)
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

func (m Model) renderStatusBar() string {
	if m.runDone {
		return "  " + ui.KeyBinding("q", "Quit", ui.ColorRed)
	}
	return "  " + ui.KeyBinding("q", "Cancel", ui.ColorRed)
}
