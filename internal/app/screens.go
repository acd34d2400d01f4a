package app

// Screen represents the current view in the application
type Screen int

const (
	ScreenTagging Screen = iota
	ScreenComplete
	ScreenError
)

func (s Screen) String() string {
	names := []string{
		"Tagging",
		"Complete",
		"Error",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "Unknown"
}
