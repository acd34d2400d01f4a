package app

import (
	"time"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/ui"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunFunc performs the publish, reporting each ticket as it settles
type RunFunc func(onResult func(models.TagResult)) error

// Options configures the progress view
type Options struct {
	// Version is the release name shown in the header
	Version string
	// Total is the number of tickets that will be tagged
	Total  int
	DryRun bool
	Run    RunFunc
	// Cancel, when set, is called if the user quits before the run ends
	Cancel func()
}

// Model is the live progress view for publish
type Model struct {
	opts Options

	screen       Screen
	results      []models.TagResult
	resultsChan  chan models.TagResult
	runDone      bool
	drained      bool
	err          error
	shouldQuit   bool
	spinnerFrame int
	progress     progress.Model

	// Window size
	width  int
	height int
}

// New creates a new progress model. The result channel holds Total
// results so the run never blocks on a view that already quit.
func New(opts Options) Model {
	bar := progress.New(
		progress.WithSolidFill(string(ui.ColorGreen)),
		progress.WithWidth(36),
		progress.WithColorProfile(lipgloss.ColorProfile()),
	)

	return Model{
		opts:        opts,
		screen:      ScreenTagging,
		resultsChan: make(chan models.TagResult, max(opts.Total, 16)),
		progress:    bar,
		width:       80,
		height:      24,
	}
}

// Init starts the run and the listeners
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		runCmd(m.opts.Run, m.resultsChan),
		listenForResults(m.resultsChan),
	)
}

// Results returns the tag results received so far
func (m Model) Results() []models.TagResult {
	return m.results
}

// Err returns the error the run finished with
func (m Model) Err() error {
	return m.err
}

// Finished reports whether the run ended (successfully or not)
func (m Model) Finished() bool {
	return m.runDone
}

// tickMsg is sent on each tick for animations
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}
