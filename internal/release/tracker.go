package release

import (
	"context"

	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
)

// IssueReader fetches issue fields for the gate
type IssueReader interface {
	GetIssue(ctx context.Context, key string, fields ...string) (*jira.Issue, error)
}

// IssueEditor attaches fix versions for the tagger
type IssueEditor interface {
	AddFixVersion(ctx context.Context, key, versionID string) error
}

// VersionStore lists and creates project versions for the reconciler
type VersionStore interface {
	ListProjectVersions(ctx context.Context, projectIDOrKey string) ([]jira.Version, error)
	CreateVersion(ctx context.Context, request jira.CreateVersionRequest) (*jira.Version, error)
}

// ProjectReader resolves a project key to its id
type ProjectReader interface {
	GetProject(ctx context.Context, idOrKey string) (*jira.Project, error)
}

// Tracker is everything the lifecycle hooks need from Jira
type Tracker interface {
	IssueReader
	IssueEditor
	VersionStore
	ProjectReader
}

var _ Tracker = (*jira.Client)(nil)
