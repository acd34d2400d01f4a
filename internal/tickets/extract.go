package tickets

import (
	"log/slog"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Extract returns the ticket keys referenced by the commits, in first-seen
// order with duplicates removed. Keys are upper-cased so "abc-7" and "ABC-7"
// collapse into one ticket.
func Extract(patterns *Patterns, commits []models.CommitInfo, logger *slog.Logger) []string {
	if patterns == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	upper := cases.Upper(language.Und)
	seen := make(map[string]bool)
	var tickets []string

	for _, commit := range commits {
		message := norm.NFC.String(commit.Message)
		for _, re := range patterns.regexps {
			for _, match := range re.FindAllString(message, -1) {
				ticket := upper.String(match)
				logger.Info("found ticket", "ticket", ticket, "commit", commit.Hash)
				if seen[ticket] {
					continue
				}
				seen[ticket] = true
				tickets = append(tickets, ticket)
			}
		}
	}

	return tickets
}
