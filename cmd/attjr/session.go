package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/wahlandcase/attuned.jirarelease/internal/config"
	"github.com/wahlandcase/attuned.jirarelease/internal/git"
	"github.com/wahlandcase/attuned.jirarelease/internal/ignorelist"
	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/release"
	"github.com/wahlandcase/attuned.jirarelease/internal/ui"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// session is everything a command needs once flags and config are resolved
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	repo    string
	commits []models.CommitInfo
	plugin  *release.Plugin
}

// sessionMode selects how much of the environment a command needs
type sessionMode int

const (
	// offline commands only read git history
	offline sessionMode = iota
	// online commands also talk to Jira
	online
)

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run_id", uuid.Must(uuid.NewV7()).String())
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flag := cmd.Flag("dry-run"); flag != nil && flag.Changed {
		cfg.DryRun = opts.DryRun
	}
	if flag := cmd.Flag("concurrency"); flag != nil && flag.Changed {
		cfg.Network.Concurrency = opts.Concurrency
	}
	return cfg, nil
}

// newSession validates configuration and credentials before any git or
// network work, then reads the release commits.
func newSession(cmd *cobra.Command, opts *rootOptions, mode sessionMode, logOutput io.Writer) (*session, error) {
	ui.SetColorMode(opts.NoColor)
	logger := newLogger(logOutput, opts.Verbose)

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	var client *jira.Client
	if mode == online {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config:\n%w", err)
		}
		auth, err := jira.AuthFromEnv()
		if err != nil {
			return nil, err
		}
		client, err = jira.NewClient(jira.Config{
			BaseURL:    cfg.Jira.Host,
			Auth:       auth,
			HTTPClient: opts.httpClient,
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
	} else if err := cfg.ValidateTickets(); err != nil {
		return nil, fmt.Errorf("invalid config:\n%w", err)
	}

	root, err := git.FindRepoRoot(opts.Repo)
	if err != nil {
		return nil, err
	}
	if opts.Fetch {
		logger.Info("fetching tags", "repo", root)
		if err := git.FetchTags(root); err != nil {
			return nil, err
		}
	}

	commits, err := git.Commits(root, git.Range{From: opts.From, To: opts.To})
	if err != nil {
		return nil, err
	}
	logger.Debug("read commits", "repo", root, "count", len(commits))

	plugin := &release.Plugin{
		Config: cfg,
		Ignore: ignorelist.New(ignorelist.Discover(root, cfg.Ignore.File), logger),
		Logger: logger,
	}
	if client != nil {
		plugin.Tracker = client
	}

	return &session{
		cfg:     cfg,
		logger:  logger,
		repo:    root,
		commits: commits,
		plugin:  plugin,
	}, nil
}

func (s *session) run(next models.NextRelease) release.RunContext {
	return release.RunContext{Commits: s.commits, NextRelease: next, Logger: s.logger}
}
