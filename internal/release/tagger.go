package release

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency caps in-flight edits when Tagger.Concurrency is unset
const DefaultConcurrency = 10

// FailurePolicy decides what an unclassified tagging failure does to the run
type FailurePolicy int

const (
	// ContinueOnUnexpected logs unexpected failures and lets the run succeed.
	// This matches long-standing behavior but can hide real problems.
	ContinueOnUnexpected FailurePolicy = iota
	// FailOnUnexpected fails the run after every ticket has been attempted.
	FailOnUnexpected
)

// DefaultToleratedErrors match failures that are expected on some tickets:
// the issue was deleted, or its type has no fix version field on screen.
var DefaultToleratedErrors = []*regexp.Regexp{
	regexp.MustCompile(`Issue does not exist`),
	regexp.MustCompile(`Field 'fixVersions' cannot be set`),
}

// Tagger adds a version to the fix versions of many tickets at once
type Tagger struct {
	Issues      IssueEditor
	Concurrency int
	DryRun      bool
	// Tolerated extends DefaultToleratedErrors
	Tolerated    []*regexp.Regexp
	OnUnexpected FailurePolicy
	// OnResult, when set, is called as each ticket settles. It may be
	// called from several goroutines at once.
	OnResult func(models.TagResult)
	Logger   *slog.Logger
}

// TagAll attaches version to every ticket with at most Concurrency edits in
// flight. It returns once every attempt has settled, with results in the
// order of tickets. Individual failures never stop sibling edits.
func (t *Tagger) TagAll(ctx context.Context, tickets []string, version *jira.Version) ([]models.TagResult, error) {
	if version == nil || version.ID == "" {
		return nil, ErrMissingReleaseID
	}

	limit := t.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}

	results := make([]models.TagResult, len(tickets))
	var group errgroup.Group
	group.SetLimit(limit)

	for i, ticket := range tickets {
		group.Go(func() error {
			result := t.tag(ctx, ticket, version)
			results[i] = result
			if t.OnResult != nil {
				t.OnResult(result)
			}
			return nil
		})
	}
	_ = group.Wait()

	var unexpected []models.TagResult
	for _, result := range results {
		if models.IsStatusFailed(result.Status) {
			unexpected = append(unexpected, result)
		}
	}
	if len(unexpected) > 0 && t.OnUnexpected == FailOnUnexpected {
		return results, &TaggingFailedError{Failures: unexpected}
	}
	return results, nil
}

func (t *Tagger) tag(ctx context.Context, ticket string, version *jira.Version) models.TagResult {
	logger := t.logger()
	logger.Info("adding ticket to version", "ticket", ticket, "version", version.Name)

	if t.DryRun {
		return models.TagResult{Ticket: ticket, Status: models.DryRun}
	}

	err := t.Issues.AddFixVersion(ctx, ticket, version.ID)
	if err == nil {
		return models.TagResult{Ticket: ticket, Status: models.Tagged}
	}

	messages := jira.ErrorMessages(err)
	reason := strings.Join(messages, ", ")
	if t.isTolerated(messages) {
		logger.Error("unable to update ticket", "ticket", ticket, "status_code", jira.StatusCode(err), "reason", reason)
		return models.TagResult{Ticket: ticket, Status: models.Tolerated(reason)}
	}

	logger.Error("unexpected failure updating ticket",
		"ticket", ticket,
		"version_id", version.ID,
		"status_code", jira.StatusCode(err),
		"messages", messages,
		"error", err,
	)
	return models.TagResult{Ticket: ticket, Status: models.Failed(reason)}
}

func (t *Tagger) isTolerated(messages []string) bool {
	for _, message := range messages {
		for _, re := range DefaultToleratedErrors {
			if re.MatchString(message) {
				return true
			}
		}
		for _, re := range t.Tolerated {
			if re.MatchString(message) {
				return true
			}
		}
	}
	return false
}

func (t *Tagger) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}
