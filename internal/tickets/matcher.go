package tickets

import (
	"errors"
	"fmt"
	"regexp"
)

// Matcher describes how ticket references are recognized in commit messages.
// It is either a custom pattern or a list of project prefixes.
type Matcher struct {
	pattern  string
	prefixes []string
	custom   bool
}

// CustomPattern matches tickets with a user-supplied regular expression,
// used verbatim (case-insensitive) as the only pattern.
func CustomPattern(pattern string) Matcher {
	return Matcher{pattern: pattern, custom: true}
}

// PrefixDerived matches PREFIX-NUMBER for each of the given prefixes.
func PrefixDerived(prefixes []string) Matcher {
	return Matcher{prefixes: append([]string(nil), prefixes...)}
}

// IsCustom reports whether the matcher uses a custom pattern
func (m Matcher) IsCustom() bool {
	return m.custom
}

// Patterns is a compiled Matcher
type Patterns struct {
	regexps []*regexp.Regexp
}

// Compile resolves the matcher into its compiled pattern set
func (m Matcher) Compile() (*Patterns, error) {
	if m.custom {
		if m.pattern == "" {
			return nil, errors.New("empty ticket pattern")
		}
		re, err := regexp.Compile("(?i)" + m.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid ticket pattern %q: %w", m.pattern, err)
		}
		return &Patterns{regexps: []*regexp.Regexp{re}}, nil
	}

	if len(m.prefixes) == 0 {
		return nil, errors.New("no ticket prefixes configured")
	}
	regexps := make([]*regexp.Regexp, 0, len(m.prefixes))
	for _, prefix := range m.prefixes {
		if prefix == "" {
			return nil, errors.New("empty ticket prefix")
		}
		regexps = append(regexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(prefix)+`-\d+\b`))
	}
	return &Patterns{regexps: regexps}, nil
}

// MustCompile is like Compile but panics on error
func (m Matcher) MustCompile() *Patterns {
	p, err := m.Compile()
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of compiled patterns
func (p *Patterns) Len() int {
	return len(p.regexps)
}
