package main

import (
	"net/http"

	"github.com/spf13/cobra"
)

// rootOptions holds global flags for all commands
type rootOptions struct {
	ConfigPath  string
	Repo        string
	From        string
	To          string
	DryRun      bool
	Concurrency int
	Verbose     bool
	NoColor     bool
	Fetch       bool

	// httpClient overrides the Jira transport; unset outside tests
	httpClient *http.Client
}

// NewRootCommand creates the root command for attjr
func NewRootCommand() *cobra.Command {
	return newRootCommand(&rootOptions{})
}

func newRootCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attjr",
		Short: "Gate releases on open Jira tickets and tag them with the release version",
		Long: `attjr reads the commits of a release, extracts the Jira tickets they
reference and talks to Jira in two phases:

  verify   fails when a referenced ticket is already closed
  publish  finds or creates the release version and adds it to every ticket

Credentials are read from the JIRA_AUTH environment variable.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "config file (default ./attjr.toml)")
	flags.StringVar(&opts.Repo, "repo", ".", "path inside the git repository")
	flags.StringVar(&opts.From, "from", "", "exclusive start of the commit range (default: nearest tag)")
	flags.StringVar(&opts.To, "to", "HEAD", "end of the commit range")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "read from Jira but never write to it")
	flags.IntVar(&opts.Concurrency, "concurrency", 0, "max in-flight ticket edits (overrides network.concurrency)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.Fetch, "fetch", false, "fetch tags from origin before reading commits")

	cmd.AddCommand(newVerifyCommand(opts))
	cmd.AddCommand(newPublishCommand(opts))
	cmd.AddCommand(newTicketsCommand(opts))
	cmd.AddCommand(newInitCommand(opts))

	return cmd
}
