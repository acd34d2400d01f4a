package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.runDone && m.drained {
			return m, nil
		}
		m.spinnerFrame = (m.spinnerFrame + 1) % 10
		return m, tickCmd()

	case tagResultMsg:
		m.results = append(m.results, msg.result)
		// Continue listening for more results
		return m, listenForResults(m.resultsChan)

	case resultsClosedMsg:
		m.drained = true
		return m.maybeQuit()

	case runDoneMsg:
		m.runDone = true
		m.err = msg.err
		if msg.err != nil {
			m.screen = ScreenError
		} else {
			m.screen = ScreenComplete
		}
		return m.maybeQuit()
	}

	return m, nil
}

// maybeQuit exits once the run returned and every result was shown
func (m Model) maybeQuit() (tea.Model, tea.Cmd) {
	if m.runDone && m.drained {
		return m, tea.Quit
	}
	return m, nil
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		if !m.runDone && m.opts.Cancel != nil {
			m.opts.Cancel()
		}
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}
