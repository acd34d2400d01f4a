package app

import (
	"fmt"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	tea "github.com/charmbracelet/bubbletea"
)

// tagResultMsg is sent for every ticket that settles during the run
type tagResultMsg struct {
	result models.TagResult
}

// resultsClosedMsg is sent once the result channel is drained and closed
type resultsClosedMsg struct{}

// runDoneMsg is sent when the run returns
type runDoneMsg struct {
	err error
}

// listenForResults creates a subscription that listens to the result channel
func listenForResults(ch chan models.TagResult) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return resultsClosedMsg{}
		}
		result, ok := <-ch
		if !ok {
			return resultsClosedMsg{}
		}
		return tagResultMsg{result: result}
	}
}

// runCmd executes the run, forwarding results to ch and closing it after
func runCmd(run RunFunc, ch chan models.TagResult) tea.Cmd {
	return func() (msg tea.Msg) {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				msg = runDoneMsg{err: fmt.Errorf("publish panicked: %v", r)}
			}
		}()

		if run == nil {
			return runDoneMsg{}
		}
		err := run(func(result models.TagResult) {
			ch <- result
		})
		return runDoneMsg{err: err}
	}
}
