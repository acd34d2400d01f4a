package release

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"
)

// ErrMissingReleaseID is returned when no usable version id is available
var ErrMissingReleaseID = errors.New("missing release version id")

// ReleaseBlockedError is the gate's aggregate failure. Findings holds every
// reportable finding collected before the gate stopped, not only the
// blocking ones.
type ReleaseBlockedError struct {
	Findings []models.Finding
}

func (e *ReleaseBlockedError) Error() string {
	var builder strings.Builder
	builder.WriteString("pre-flight checks failed: some tickets are closed:\n")
	for _, finding := range e.Findings {
		if !finding.Reportable() {
			continue
		}
		builder.WriteString("\n")
		builder.WriteString(finding.Message)
	}
	return builder.String()
}

// Blocking returns the tickets that blocked the release
func (e *ReleaseBlockedError) Blocking() []string {
	var tickets []string
	for _, finding := range e.Findings {
		if finding.Blocks() {
			tickets = append(tickets, finding.Ticket)
		}
	}
	return tickets
}

// TaggingFailedError reports unexpected tagging failures when the tagger is
// configured to escalate them
type TaggingFailedError struct {
	Failures []models.TagResult
}

func (e *TaggingFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, failure := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", failure.Ticket, models.GetStatusReason(failure.Status)))
	}
	return fmt.Sprintf("failed to tag %d ticket(s): %s", len(e.Failures), strings.Join(parts, "; "))
}
