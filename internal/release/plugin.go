package release

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/wahlandcase/attuned.jirarelease/internal/config"
	"github.com/wahlandcase/attuned.jirarelease/internal/ignorelist"
	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/tickets"
)

// RunContext is what the release tool hands to each lifecycle hook
type RunContext struct {
	Commits     []models.CommitInfo
	NextRelease models.NextRelease
	// Logger overrides Plugin.Logger for this run
	Logger *slog.Logger
}

// Plugin wires the gate, reconciler and tagger to a validated config
type Plugin struct {
	Config  *config.Config
	Tracker Tracker
	Ignore  *ignorelist.Resolver
	Logger  *slog.Logger
	// Now is used for release dates; defaults to time.Now
	Now func() time.Time
	// OnTagResult is forwarded to the Tagger
	OnTagResult func(models.TagResult)
}

// VerifyReport is the outcome of the verification hook
type VerifyReport struct {
	Tickets  []string
	Findings []models.Finding
}

// PublishReport is the outcome of the success hook
type PublishReport struct {
	Tickets []string
	Version *jira.Version
	Results []models.TagResult
}

// Verify is the verification hook: it extracts tickets and runs the gate.
// It must run before artifacts are published.
func (p *Plugin) Verify(ctx context.Context, run RunContext) (*VerifyReport, error) {
	logger := p.logger(run)
	patterns, err := p.patterns()
	if err != nil {
		return nil, err
	}

	found := tickets.Extract(patterns, run.Commits, logger)
	report := &VerifyReport{Tickets: found}
	if len(found) == 0 {
		logger.Info("no tickets referenced, nothing to check")
		return report, nil
	}

	gate := &Gate{
		Issues: p.Tracker,
		Ignore: p.Ignore,
		Mode:   gateMode(p.Config.Policy.GateMode),
		Logger: logger,
	}
	report.Findings, err = gate.EnsureOpen(ctx, found)
	return report, err
}

// Publish is the success hook: it finds or creates the Jira version named
// after the release and adds it to every referenced ticket.
func (p *Plugin) Publish(ctx context.Context, run RunContext) (*PublishReport, error) {
	logger := p.logger(run)
	patterns, err := p.patterns()
	if err != nil {
		return nil, err
	}

	found := tickets.Extract(patterns, run.Commits, logger)
	report := &PublishReport{Tickets: found}
	if len(found) == 0 {
		logger.Info("no tickets referenced, skipping version")
		return report, nil
	}
	logger.Info("found tickets", "tickets", strings.Join(found, ", "))

	name, err := RenderTemplate("release name", p.Config.Release.NameTemplate, run.NextRelease)
	if err != nil {
		return nil, err
	}
	description, err := RenderTemplate("release description", p.Config.Release.DescriptionTemplate, run.NextRelease)
	if err != nil {
		return nil, err
	}
	logger.Info("using jira version", "name", name)

	project, err := p.Tracker.GetProject(ctx, p.Config.Jira.Project)
	if err != nil {
		return nil, err
	}

	reconciler := &Reconciler{
		Versions:       p.Tracker,
		DryRun:         p.Config.DryRun,
		Released:       p.Config.Release.Released,
		SetReleaseDate: p.Config.Release.SetReleaseDate,
		Now:            p.Now,
		Logger:         logger,
	}
	version, err := reconciler.FindOrCreate(ctx, project.ID, name, description)
	if err != nil {
		return nil, err
	}
	report.Version = version

	tagger := &Tagger{
		Issues:       p.Tracker,
		Concurrency:  p.Config.Network.Concurrency,
		DryRun:       p.Config.DryRun,
		Tolerated:    p.Config.ToleratedTagErrors(),
		OnUnexpected: failurePolicy(p.Config.Policy.UnexpectedTagFailure),
		OnResult:     p.OnTagResult,
		Logger:       logger,
	}
	report.Results, err = tagger.TagAll(ctx, found, version)
	return report, err
}

// Tickets extracts the tickets referenced by commits without contacting Jira
func (p *Plugin) Tickets(run RunContext) ([]string, error) {
	patterns, err := p.patterns()
	if err != nil {
		return nil, err
	}
	return tickets.Extract(patterns, run.Commits, p.logger(run)), nil
}

func (p *Plugin) patterns() (*tickets.Patterns, error) {
	if p.Config == nil {
		return nil, errors.New("release: no configuration")
	}
	if patterns := p.Config.TicketPatterns(); patterns != nil {
		return patterns, nil
	}
	if err := p.Config.ValidateTickets(); err != nil {
		return nil, err
	}
	return p.Config.TicketPatterns(), nil
}

func (p *Plugin) logger(run RunContext) *slog.Logger {
	if run.Logger != nil {
		return run.Logger
	}
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func gateMode(mode string) GateMode {
	if mode == config.GateFull {
		return EvaluateAll
	}
	return FailFast
}

func failurePolicy(policy string) FailurePolicy {
	if policy == config.TagFailureFail {
		return FailOnUnexpected
	}
	return ContinueOnUnexpected
}
