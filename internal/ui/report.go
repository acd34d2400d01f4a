package ui

import (
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"github.com/charmbracelet/lipgloss"
)

// TagStatusName returns the short label of a tag status
func TagStatusName(status models.TagStatus) string {
	switch {
	case models.IsStatusTagged(status):
		return "tagged"
	case models.IsStatusDryRun(status):
		return "dry-run"
	case models.IsStatusTolerated(status):
		return "tolerated"
	case models.IsStatusFailed(status):
		return "failed"
	default:
		return "unknown"
	}
}

// RenderTickets lists the tickets found in the release commits
func RenderTickets(tickets []string) string {
	var lines []string
	lines = append(lines, SectionHeader(fmt.Sprintf("Tickets (%d)", len(tickets)), ColorCyan))
	lines = append(lines, "")

	if len(tickets) == 0 {
		dim := lipgloss.NewStyle().Foreground(ColorDarkGray)
		lines = append(lines, dim.Render("   No tickets referenced"))
		return strings.Join(lines, "\n")
	}

	ticketStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	for _, ticket := range tickets {
		lines = append(lines, "   "+ticketStyle.Render(ticket))
	}
	return strings.Join(lines, "\n")
}

// RenderFindings renders the outcome of the pre-flight gate
func RenderFindings(findings []models.Finding) string {
	var lines []string
	lines = append(lines, SectionHeader("Pre-flight", ColorMagenta))
	lines = append(lines, "")

	blocking := 0
	ticketStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	for _, finding := range findings {
		icon, color := StatusIcon(finding.Kind.String())
		text := finding.Message
		if !finding.Reportable() {
			text = "open"
		}
		if finding.Blocks() {
			blocking++
		}
		lines = append(lines, fmt.Sprintf("   %s %s: %s",
			lipgloss.NewStyle().Foreground(color).Render(icon),
			ticketStyle.Render(finding.Ticket),
			lipgloss.NewStyle().Foreground(FindingColor(finding.Kind)).Render(text),
		))
	}

	lines = append(lines, "")
	summary := fmt.Sprintf("   %d ticket(s) checked, %d blocking", len(findings), blocking)
	summaryColor := ColorGreen
	if blocking > 0 {
		summaryColor = ColorRed
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(summaryColor).Bold(true).Render(summary))

	return strings.Join(lines, "\n")
}

// RenderTagSummary renders the per-ticket results of tagging a version
func RenderTagSummary(versionName, versionID string, results []models.TagResult) string {
	var lines []string
	lines = append(lines, SectionHeader("Release "+versionName, ColorGreen))
	lines = append(lines, "")

	idStyle := lipgloss.NewStyle().Foreground(ColorDarkGray)
	lines = append(lines, fmt.Sprintf("   Version: %s %s", versionName, idStyle.Render("(id "+versionID+")")))
	lines = append(lines, "")

	ticketStyle := lipgloss.NewStyle().Foreground(ColorCyan)
	for _, result := range results {
		name := TagStatusName(result.Status)
		icon, color := StatusIcon(name)
		text := name
		if reason := models.GetStatusReason(result.Status); reason != "" {
			text = reason
		}
		lines = append(lines, fmt.Sprintf("   %s %s: %s",
			lipgloss.NewStyle().Foreground(color).Render(icon),
			ticketStyle.Render(result.Ticket),
			lipgloss.NewStyle().Foreground(color).Render(text),
		))
	}

	tagged, dryRun, tolerated, failed := models.CountTagResults(results)
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s, %s, %s, %s",
		lipgloss.NewStyle().Foreground(ColorGreen).Render(fmt.Sprintf("%d tagged", tagged)),
		lipgloss.NewStyle().Foreground(ColorBlue).Render(fmt.Sprintf("%d dry-run", dryRun)),
		lipgloss.NewStyle().Foreground(ColorYellow).Render(fmt.Sprintf("%d tolerated", tolerated)),
		lipgloss.NewStyle().Foreground(ColorRed).Render(fmt.Sprintf("%d failed", failed)),
	))

	return strings.Join(lines, "\n")
}
