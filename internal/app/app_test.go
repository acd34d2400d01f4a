package app

import (
	"errors"
	"os"
	"testing"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"
	"github.com/wahlandcase/attuned.jirarelease/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	ui.SetColorMode(true)
	os.Exit(m.Run())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestRunForwardsResultsAndCloses(t *testing.T) {
	m := New(Options{
		Total: 2,
		Run: func(onResult func(models.TagResult)) error {
			onResult(models.TagResult{Ticket: "ABC-1", Status: models.Tagged})
			onResult(models.TagResult{Ticket: "ABC-2", Status: models.Failed("boom")})
			return nil
		},
	})

	msg := runCmd(m.opts.Run, m.resultsChan)()
	assert.Equal(t, runDoneMsg{}, msg)

	first := listenForResults(m.resultsChan)()
	assert.Equal(t, tagResultMsg{result: models.TagResult{Ticket: "ABC-1", Status: models.Tagged}}, first)
	listenForResults(m.resultsChan)()
	assert.Equal(t, resultsClosedMsg{}, listenForResults(m.resultsChan)())
}

func TestRunRecoversPanic(t *testing.T) {
	ch := make(chan models.TagResult, 1)
	msg := runCmd(func(func(models.TagResult)) error { panic("kaboom") }, ch)()

	done, ok := msg.(runDoneMsg)
	require.True(t, ok)
	assert.ErrorContains(t, done.err, "kaboom")
	_, open := <-ch
	assert.False(t, open)
}

func TestModelQuitsOnceRunEndsAndResultsDrain(t *testing.T) {
	m := New(Options{Version: "v1.2.0", Total: 2})

	m, cmd := update(t, m, tagResultMsg{result: models.TagResult{Ticket: "ABC-1", Status: models.Tagged}})
	assert.NotNil(t, cmd)
	assert.Len(t, m.Results(), 1)
	assert.Contains(t, m.View(), "Tagging v1.2.0 (1/2)")
	assert.Contains(t, m.View(), "✓ ABC-1: tagged")
	assert.Contains(t, m.View(), " 50%")

	m, cmd = update(t, m, runDoneMsg{})
	assert.False(t, isQuit(cmd))
	assert.True(t, m.Finished())

	m, cmd = update(t, m, resultsClosedMsg{})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, ScreenComplete, m.screen)
	assert.Contains(t, m.View(), "1 tagged, 0 dry-run, 0 tolerated, 0 failed")
	assert.NoError(t, m.Err())
}

func TestModelShowsRunError(t *testing.T) {
	m := New(Options{Version: "v1.2.0"})

	m, _ = update(t, m, resultsClosedMsg{})
	m, cmd := update(t, m, runDoneMsg{err: errors.New("failed to tag 1 ticket(s)")})

	assert.True(t, isQuit(cmd))
	assert.Equal(t, ScreenError, m.screen)
	assert.Contains(t, m.View(), "failed to tag 1 ticket(s)")
	assert.Error(t, m.Err())
}

func TestModelCancelOnQuit(t *testing.T) {
	cancelled := false
	m := New(Options{Cancel: func() { cancelled = true }})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, cancelled)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestModelDryRunBanner(t *testing.T) {
	m := New(Options{DryRun: true})
	assert.Contains(t, m.View(), "DRY RUN MODE")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 5))
	assert.Equal(t, "ab…", truncateString("abcdef", 3))
}
