package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/wahlandcase/attuned.jirarelease/internal/tickets"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the config file looked up in the working directory
const DefaultPath = "attjr.toml"

// DefaultConcurrency is the default number of in-flight issue edits
const DefaultConcurrency = 10

// Gate modes
const (
	GateFailFast = "fail-fast"
	GateFull     = "full"
)

// Unexpected tag failure policies
const (
	TagFailureContinue = "continue"
	TagFailureFail     = "fail"
)

type Config struct {
	DryRun  bool          `toml:"dry_run"`
	Tickets TicketsConfig `toml:"tickets"`
	Jira    JiraConfig    `toml:"jira"`
	Release ReleaseConfig `toml:"release"`
	Network NetworkConfig `toml:"network"`
	Policy  PolicyConfig  `toml:"policy"`
	Ignore  IgnoreConfig  `toml:"ignore"`

	// Compiled from Tickets (not serialized)
	patterns *tickets.Patterns
	// Compiled from Policy.ToleratedTagErrors (not serialized)
	tolerated []*regexp.Regexp
}

type TicketsConfig struct {
	// Pattern is a custom regex; mutually exclusive with Prefixes
	Pattern  string   `toml:"pattern,omitempty"`
	Prefixes []string `toml:"prefixes,omitempty"`
}

type JiraConfig struct {
	Host    string `toml:"host"`
	Project string `toml:"project"`
}

type ReleaseConfig struct {
	NameTemplate        string `toml:"name_template"`
	DescriptionTemplate string `toml:"description_template"`
	Released            bool   `toml:"released"`
	SetReleaseDate      bool   `toml:"set_release_date"`
}

type NetworkConfig struct {
	Concurrency int `toml:"concurrency"`
}

type PolicyConfig struct {
	GateMode             string   `toml:"gate_mode"`
	UnexpectedTagFailure string   `toml:"unexpected_tag_failure"`
	ToleratedTagErrors   []string `toml:"tolerated_tag_errors,omitempty"`
}

type IgnoreConfig struct {
	// File overrides ignore-list discovery
	File string `toml:"file,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Release: ReleaseConfig{
			NameTemplate:        "v{{.version}}",
			DescriptionTemplate: "Automated release {{.version}}",
		},
		Network: NetworkConfig{
			Concurrency: DefaultConcurrency,
		},
		Policy: PolicyConfig{
			GateMode:             GateFailFast,
			UnexpectedTagFailure: TagFailureContinue,
		},
	}
}

// Load reads the config at path (DefaultPath when empty). A missing file
// at the default path yields the defaults; a missing explicit path is an error.
// The result is not validated; call Validate once flag overrides are applied.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, err
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, rejecting unknown keys
func Parse(data []byte, cfg *Config) error {
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(cfg)
}

// Validate checks the configuration and compiles its patterns. Errors here
// are fatal configuration errors and must stop the run before any remote call.
func (c *Config) Validate() error {
	var errs []error

	matcher, err := c.Matcher()
	if err != nil {
		errs = append(errs, err)
	} else if patterns, err := matcher.Compile(); err != nil {
		errs = append(errs, fmt.Errorf("tickets: %w", err))
	} else {
		c.patterns = patterns
	}

	if strings.TrimSpace(c.Jira.Host) == "" {
		errs = append(errs, errors.New("jira.host is required"))
	}
	if strings.TrimSpace(c.Jira.Project) == "" {
		errs = append(errs, errors.New("jira.project is required"))
	}

	if c.Network.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("network.concurrency must be at least 1 (got %d)", c.Network.Concurrency))
	}

	switch c.Policy.GateMode {
	case GateFailFast, GateFull:
	default:
		errs = append(errs, fmt.Errorf("policy.gate_mode must be %q or %q (got %q)", GateFailFast, GateFull, c.Policy.GateMode))
	}
	switch c.Policy.UnexpectedTagFailure {
	case TagFailureContinue, TagFailureFail:
	default:
		errs = append(errs, fmt.Errorf("policy.unexpected_tag_failure must be %q or %q (got %q)", TagFailureContinue, TagFailureFail, c.Policy.UnexpectedTagFailure))
	}

	c.tolerated = nil
	for _, expr := range c.Policy.ToleratedTagErrors {
		re, err := regexp.Compile(expr)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid policy.tolerated_tag_errors entry %q: %w", expr, err))
			continue
		}
		c.tolerated = append(c.tolerated, re)
	}

	return errors.Join(errs...)
}

// ValidateTickets checks only the ticket matching settings, for commands
// that never contact the tracker.
func (c *Config) ValidateTickets() error {
	matcher, err := c.Matcher()
	if err != nil {
		return err
	}
	patterns, err := matcher.Compile()
	if err != nil {
		return fmt.Errorf("tickets: %w", err)
	}
	c.patterns = patterns
	return nil
}

// Matcher returns the ticket matcher described by the tickets section
func (c *Config) Matcher() (tickets.Matcher, error) {
	hasPattern := c.Tickets.Pattern != ""
	hasPrefixes := len(c.Tickets.Prefixes) > 0
	switch {
	case hasPattern && hasPrefixes:
		return tickets.Matcher{}, errors.New("tickets.pattern and tickets.prefixes are mutually exclusive")
	case hasPattern:
		return tickets.CustomPattern(c.Tickets.Pattern), nil
	case hasPrefixes:
		return tickets.PrefixDerived(c.Tickets.Prefixes), nil
	default:
		return tickets.Matcher{}, errors.New("one of tickets.pattern or tickets.prefixes is required")
	}
}

// TicketPatterns returns the compiled ticket patterns (nil before Validate)
func (c *Config) TicketPatterns() *tickets.Patterns {
	return c.patterns
}

// ToleratedTagErrors returns the compiled extra tolerated-error patterns
func (c *Config) ToleratedTagErrors() []*regexp.Regexp {
	return c.tolerated
}

func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
