package release

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/ignorelist"
	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"
)

// GateMode decides when the gate stops on a blocking ticket
type GateMode int

const (
	// FailFast stops at the first blocking ticket; later tickets are not
	// fetched and do not appear in the report.
	FailFast GateMode = iota
	// EvaluateAll checks every ticket before deciding, so one run reports
	// every closed ticket.
	EvaluateAll
)

// gateFields are the issue fields the gate reads
var gateFields = []string{"summary", "status", "resolution"}

// Gate is the pre-flight check that blocks a release when a referenced
// ticket is already closed.
type Gate struct {
	Issues IssueReader
	Ignore *ignorelist.Resolver
	Mode   GateMode
	Logger *slog.Logger
}

// EnsureOpen checks tickets one at a time in order. Unreachable tickets are
// reported but never block. It returns the findings gathered and, when a
// non-ignored ticket is closed with a resolution, a *ReleaseBlockedError.
func (g *Gate) EnsureOpen(ctx context.Context, tickets []string) ([]models.Finding, error) {
	logger := g.Logger
	if logger == nil {
		logger = slog.Default()
	}

	findings := make([]models.Finding, 0, len(tickets))
	blocked := false

	for _, ticket := range tickets {
		finding := g.check(ctx, ticket)
		findings = append(findings, finding)

		switch finding.Kind {
		case models.FindingBlocking:
			logger.Error("ticket is closed", "ticket", ticket)
			blocked = true
		case models.FindingExempt:
			logger.Warn("ticket is closed but ignore-listed", "ticket", ticket)
		case models.FindingUnreachable:
			logger.Warn("could not fetch ticket, skipping", "ticket", ticket, "reason", finding.Message)
		default:
			logger.Debug("ticket is open", "ticket", ticket)
		}

		if blocked && g.Mode == FailFast {
			return findings, &ReleaseBlockedError{Findings: findings}
		}
	}

	if blocked {
		return findings, &ReleaseBlockedError{Findings: findings}
	}
	return findings, nil
}

func (g *Gate) check(ctx context.Context, ticket string) models.Finding {
	issue, err := g.Issues.GetIssue(ctx, ticket, gateFields...)
	if err != nil {
		return models.Finding{
			Ticket:  ticket,
			Kind:    models.FindingUnreachable,
			Message: fmt.Sprintf(">>> Could not fetch ticket %s, it will be ignored/skipped. (%s)", ticket, strings.Join(jira.ErrorMessages(err), ", ")),
		}
	}

	if !issue.Fields.IsDone() || issue.Fields.Resolution == nil {
		return models.Finding{Ticket: ticket, Kind: models.FindingOpen}
	}

	resolution := issue.Fields.Resolution.Name
	if g.Ignore != nil && g.Ignore.IsIgnored(ctx, ticket) {
		return models.Finding{
			Ticket:  ticket,
			Kind:    models.FindingExempt,
			Message: fmt.Sprintf("--- Ticket %s is closed with resolution %s, but it is on the ignore list.", ticket, resolution),
		}
	}
	return models.Finding{
		Ticket:  ticket,
		Kind:    models.FindingBlocking,
		Message: fmt.Sprintf("*** Ticket %s is closed with resolution %s. Reopen it to unblock the release.", ticket, resolution),
	}
}
