package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/app"
	"github.com/wahlandcase/attuned.jirarelease/internal/config"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/release"
	"github.com/wahlandcase/attuned.jirarelease/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Fail when a ticket referenced by the release is already closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts, online, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			report, err := s.plugin.Verify(cmd.Context(), s.run(models.NextRelease{}))
			if report != nil {
				out := cmd.OutOrStdout()
				if len(report.Findings) > 0 {
					fmt.Fprintln(out, ui.RenderFindings(report.Findings))
				} else {
					fmt.Fprintln(out, ui.RenderTickets(report.Tickets))
				}
			}
			return err
		},
	}
}

// publishOptions holds flags for the publish command
type publishOptions struct {
	Version   string
	NotesFile string
	TUI       bool
}

func newPublishCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &publishOptions{}

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Create the release version in Jira and add it to every referenced ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublish(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", "", "version being released (required)")
	cmd.Flags().StringVar(&opts.NotesFile, "notes-file", "", "file holding the release notes")
	cmd.Flags().BoolVar(&opts.TUI, "tui", false, "show live tagging progress")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func runPublish(cmd *cobra.Command, rootOpts *rootOptions, opts *publishOptions) error {
	next := models.NextRelease{Version: strings.TrimSpace(opts.Version)}
	if next.Version == "" {
		return errors.New("--version must not be empty")
	}
	if opts.NotesFile != "" {
		notes, err := os.ReadFile(opts.NotesFile)
		if err != nil {
			return fmt.Errorf("failed to read release notes: %w", err)
		}
		next.Notes = string(notes)
	}

	// Logs would tear the progress view apart, keep them for --verbose
	logOutput := cmd.ErrOrStderr()
	if opts.TUI && !rootOpts.Verbose {
		logOutput = io.Discard
	}

	s, err := newSession(cmd, rootOpts, online, logOutput)
	if err != nil {
		return err
	}
	run := s.run(next)

	var report *release.PublishReport
	if opts.TUI {
		report, err = publishWithProgress(cmd, s, run)
	} else {
		report, err = s.plugin.Publish(cmd.Context(), run)
	}

	if report != nil {
		out := cmd.OutOrStdout()
		if report.Version == nil {
			fmt.Fprintln(out, ui.RenderTickets(report.Tickets))
		} else {
			fmt.Fprintln(out, ui.RenderTagSummary(report.Version.Name, report.Version.ID, report.Results))
		}
	}
	return err
}

// publishWithProgress runs publish behind the bubbletea progress view
func publishWithProgress(cmd *cobra.Command, s *session, run release.RunContext) (*release.PublishReport, error) {
	found, err := s.plugin.Tickets(run)
	if err != nil {
		return nil, err
	}
	name, err := release.RenderTemplate("release name", s.cfg.Release.NameTemplate, run.NextRelease)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var report *release.PublishReport
	model := app.New(app.Options{
		Version: name,
		Total:   len(found),
		DryRun:  s.cfg.DryRun,
		Cancel:  cancel,
		Run: func(onResult func(models.TagResult)) error {
			s.plugin.OnTagResult = onResult
			var err error
			report, err = s.plugin.Publish(ctx, run)
			return err
		},
	})

	program := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("error running program: %w", err)
	}

	result, ok := final.(app.Model)
	if !ok || !result.Finished() {
		return nil, errors.New("publish cancelled")
	}
	return report, result.Err()
}

// ticketsOptions holds flags for the tickets command
type ticketsOptions struct {
	Plain bool
}

func newTicketsCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &ticketsOptions{}

	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "List the tickets referenced by the release commits (no Jira access)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, rootOpts, offline, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			found, err := s.plugin.Tickets(s.run(models.NextRelease{}))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.Plain {
				for _, ticket := range found {
					fmt.Fprintln(out, ticket)
				}
				return nil
			}
			fmt.Fprintln(out, ui.RenderTickets(found))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Plain, "plain", false, "print one ticket key per line")

	return cmd
}

// initOptions holds flags for the init command
type initOptions struct {
	Host     string
	Project  string
	Prefixes []string
	Force    bool
}

func newInitCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := rootOpts.ConfigPath
			if path == "" {
				path = config.DefaultPath
			}
			if _, err := os.Stat(path); err == nil && !opts.Force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			cfg.Jira.Host = opts.Host
			cfg.Jira.Project = opts.Project
			cfg.Tickets.Prefixes = opts.Prefixes
			if len(cfg.Tickets.Prefixes) == 0 && opts.Project != "" {
				cfg.Tickets.Prefixes = []string{opts.Project}
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config:\n%w", err)
			}

			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", "", "Jira host, e.g. example.atlassian.net")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Jira project key")
	cmd.Flags().StringSliceVar(&opts.Prefixes, "prefix", nil, "ticket prefix (repeatable, defaults to the project key)")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
