// Package termfix adjusts terminal environment variables that make
// termenv's capability probing stall. Apply must run before the first
// lipgloss render.
package termfix

import "os"

// Apply fixes the environment of the current process
func Apply() {
	apply(os.Getenv, os.Setenv)
}

func apply(getenv func(string) string, setenv func(string, string) error) {
	// Warp answers the background-color query slowly, which delays every
	// program start by about a second
	if getenv("TERM_PROGRAM") == "WarpTerminal" {
		_ = setenv("TERM", "dumb")
		_ = setenv("COLORTERM", "truecolor")
	}
}
