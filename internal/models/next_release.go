package models

// NextRelease describes the release being published
type NextRelease struct {
	// Version is the semantic version being released (e.g., "1.4.0")
	Version string
	// Notes are the generated release notes
	Notes string
}
