package release

import (
	"context"
	"sync"
	"testing"

	"github.com/wahlandcase/attuned.jirarelease/internal/config"
	"github.com/wahlandcase/attuned.jirarelease/internal/ignorelist"
	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, mutate func(*config.Config)) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Tickets.Prefixes = []string{"ABC"}
	cfg.Jira.Host = "example.atlassian.net"
	cfg.Jira.Project = "ABC"
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func testRun() RunContext {
	return RunContext{
		Commits: []models.CommitInfo{
			models.NewCommitInfo("aaaaaaa", "feat: ABC-1 add export"),
			models.NewCommitInfo("bbbbbbb", "fix: abc-2 and ABC-1 again"),
			models.NewCommitInfo("ccccccc", "chore: bump deps"),
		},
		NextRelease: models.NextRelease{Version: "1.4.0", Notes: "## Features"},
		Logger:      quietLogger(),
	}
}

func TestPluginVerifyPasses(t *testing.T) {
	tracker := newFakeTracker()
	tracker.addOpen("ABC-1")
	tracker.addOpen("ABC-2")
	plugin := &Plugin{Config: testConfig(t, nil), Tracker: tracker}

	report, err := plugin.Verify(context.Background(), testRun())

	require.NoError(t, err)
	assert.Equal(t, []string{"ABC-1", "ABC-2"}, report.Tickets)
	assert.Empty(t, tracker.creates)
	assert.Empty(t, tracker.fixVersions)
}

func TestPluginVerifyBlocked(t *testing.T) {
	tracker := newFakeTracker()
	tracker.addOpen("ABC-1")
	tracker.addClosed("ABC-2", "Fixed")
	plugin := &Plugin{Config: testConfig(t, nil), Tracker: tracker}

	_, err := plugin.Verify(context.Background(), testRun())

	var blocked *ReleaseBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, []string{"ABC-2"}, blocked.Blocking())
}

func TestPluginVerifyHonoursIgnoreList(t *testing.T) {
	tracker := newFakeTracker()
	tracker.addOpen("ABC-1")
	tracker.addClosed("ABC-2", "Fixed")
	plugin := &Plugin{
		Config:  testConfig(t, nil),
		Tracker: tracker,
		Ignore:  ignorelist.Static("abc-2"),
	}

	report, err := plugin.Verify(context.Background(), testRun())

	require.NoError(t, err)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, models.FindingExempt, report.Findings[1].Kind)
}

func TestPluginVerifyNoTickets(t *testing.T) {
	tracker := newFakeTracker()
	plugin := &Plugin{Config: testConfig(t, nil), Tracker: tracker}
	run := RunContext{Commits: []models.CommitInfo{models.NewCommitInfo("aaaaaaa", "docs: readme")}, Logger: quietLogger()}

	report, err := plugin.Verify(context.Background(), run)

	require.NoError(t, err)
	assert.Empty(t, report.Tickets)
	assert.Empty(t, tracker.fetched)
}

func TestPluginPublish(t *testing.T) {
	tracker := newFakeTracker()
	var mu sync.Mutex
	var reported int
	plugin := &Plugin{
		Config: testConfig(t, func(cfg *config.Config) {
			cfg.Release.NameTemplate = "app-{{.version}}"
		}),
		Tracker: tracker,
		OnTagResult: func(models.TagResult) {
			mu.Lock()
			reported++
			mu.Unlock()
		},
	}

	report, err := plugin.Publish(context.Background(), testRun())

	require.NoError(t, err)
	require.Len(t, tracker.creates, 1)
	assert.Equal(t, "app-1.4.0", tracker.creates[0].Name)
	assert.Equal(t, "Automated release 1.4.0", tracker.creates[0].Description)
	assert.Equal(t, int64(10000), tracker.creates[0].ProjectID)
	assert.Equal(t, "20001", report.Version.ID)
	assert.Equal(t, []string{"20001"}, tracker.fixVersions["ABC-1"])
	assert.Equal(t, []string{"20001"}, tracker.fixVersions["ABC-2"])
	assert.Equal(t, 2, reported)

	// A second publish of the same release reuses the version
	_, err = plugin.Publish(context.Background(), testRun())
	require.NoError(t, err)
	assert.Len(t, tracker.creates, 1)
}

func TestPluginPublishDryRun(t *testing.T) {
	tracker := newFakeTracker()
	plugin := &Plugin{
		Config:  testConfig(t, func(cfg *config.Config) { cfg.DryRun = true }),
		Tracker: tracker,
	}

	report, err := plugin.Publish(context.Background(), testRun())

	require.NoError(t, err)
	assert.Equal(t, DryRunVersionID, report.Version.ID)
	assert.Empty(t, tracker.creates)
	assert.Empty(t, tracker.fixVersions)
	tagged, dryRun, _, _ := models.CountTagResults(report.Results)
	assert.Equal(t, 0, tagged)
	assert.Equal(t, 2, dryRun)
}

func TestPluginPublishNoTickets(t *testing.T) {
	tracker := newFakeTracker()
	plugin := &Plugin{Config: testConfig(t, nil), Tracker: tracker}
	run := RunContext{Commits: []models.CommitInfo{models.NewCommitInfo("aaaaaaa", "docs: readme")}, Logger: quietLogger()}

	report, err := plugin.Publish(context.Background(), run)

	require.NoError(t, err)
	assert.Nil(t, report.Version)
	assert.Empty(t, tracker.creates)
}

func TestPluginPublishUnknownTemplateKey(t *testing.T) {
	tracker := newFakeTracker()
	plugin := &Plugin{
		Config: testConfig(t, func(cfg *config.Config) {
			cfg.Release.NameTemplate = "v{{.build}}"
		}),
		Tracker: tracker,
	}

	_, err := plugin.Publish(context.Background(), testRun())

	assert.ErrorContains(t, err, "release name")
	assert.Empty(t, tracker.creates)
}

func TestPluginPublishEscalatesUnexpectedFailures(t *testing.T) {
	tracker := newFakeTracker()
	tracker.editErrs["ABC-1"] = assert.AnError
	plugin := &Plugin{
		Config: testConfig(t, func(cfg *config.Config) {
			cfg.Policy.UnexpectedTagFailure = config.TagFailureFail
		}),
		Tracker: tracker,
	}

	report, err := plugin.Publish(context.Background(), testRun())

	var failed *TaggingFailedError
	require.ErrorAs(t, err, &failed)
	assert.Len(t, report.Results, 2)
	assert.Equal(t, []string{"20001"}, tracker.fixVersions["ABC-2"])
}

func TestPluginTicketsWithoutValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tickets.Pattern = `PROJ-\d+`
	plugin := &Plugin{Config: cfg}
	run := RunContext{
		Commits: []models.CommitInfo{models.NewCommitInfo("aaaaaaa", "proj-7 fix")},
		Logger:  quietLogger(),
	}

	found, err := plugin.Tickets(run)

	require.NoError(t, err)
	assert.Equal(t, []string{"PROJ-7"}, found)
}

func TestRenderTemplate(t *testing.T) {
	next := models.NextRelease{Version: "2.0.0", Notes: "notes"}

	out, err := RenderTemplate("name", "v{{.version}} ({{.notes}})", next)
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0 (notes)", out)

	_, err = RenderTemplate("name", "{{.missing}}", next)
	assert.Error(t, err)

	_, err = RenderTemplate("name", "{{.version", next)
	assert.ErrorContains(t, err, "parsing name template")
}
