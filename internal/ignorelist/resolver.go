// Package ignorelist resolves which tickets are exempt from the pre-flight
// gate. The list is loaded at most once per Resolver and cached for the rest
// of the run; a new Resolver re-reads it.
package ignorelist

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// File is the on-disk ignore configuration
type File struct {
	Ignored []string `json:"ignored" yaml:"ignored"`
}

// Loader fetches the ignore configuration. It returns nil, nil when no
// configuration exists.
type Loader func(ctx context.Context) (*File, error)

// Resolver answers IsIgnored from a lazily loaded, memoized ignore list
type Resolver struct {
	loader Loader
	logger *slog.Logger

	once    sync.Once
	ignored map[string]bool
}

// New creates a Resolver backed by loader. A nil loader ignores nothing.
func New(loader Loader, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{loader: loader, logger: logger}
}

// Static returns a Resolver over a fixed list, for callers that already
// have the tickets in hand.
func Static(tickets ...string) *Resolver {
	return New(func(context.Context) (*File, error) {
		return &File{Ignored: tickets}, nil
	}, nil)
}

// IsIgnored reports whether ticket is on the ignore list. The first call
// triggers the load; later calls reuse the cached result.
func (r *Resolver) IsIgnored(ctx context.Context, ticket string) bool {
	r.once.Do(func() { r.load(ctx) })
	return r.ignored[strings.ToUpper(ticket)]
}

func (r *Resolver) load(ctx context.Context) {
	r.ignored = make(map[string]bool)
	if r.loader == nil {
		return
	}

	file, err := r.loader(ctx)
	if err != nil {
		// Missing or unreadable configuration means nothing is ignored.
		r.logger.Warn("could not load ignore list, treating all tickets as not ignored", "error", err)
		return
	}
	if file == nil {
		r.logger.Debug("no ignore list found")
		return
	}

	for _, ticket := range file.Ignored {
		ticket = strings.TrimSpace(ticket)
		if ticket != "" {
			r.ignored[strings.ToUpper(ticket)] = true
		}
	}
	r.logger.Debug("loaded ignore list", "count", len(r.ignored))
}
