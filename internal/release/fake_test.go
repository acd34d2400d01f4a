package release

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTracker is an in-memory Jira used by the release tests
type fakeTracker struct {
	mu sync.Mutex

	issues    map[string]*jira.Issue
	issueErrs map[string]error
	editErrs  map[string]error
	project   jira.Project
	versions  []jira.Version

	fetched     []string
	creates     []jira.CreateVersionRequest
	fixVersions map[string][]string

	editDelay   time.Duration
	inFlight    int
	maxInFlight int
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{
		issues:      make(map[string]*jira.Issue),
		issueErrs:   make(map[string]error),
		editErrs:    make(map[string]error),
		project:     jira.Project{ID: "10000", Key: "ABC"},
		fixVersions: make(map[string][]string),
	}
}

func (f *fakeTracker) addOpen(key string) {
	f.issues[key] = &jira.Issue{Key: key, Fields: jira.IssueFields{
		Status: &jira.Status{Name: "In Progress", StatusCategory: &jira.StatusCategory{Key: "indeterminate", Name: "In Progress"}},
	}}
}

func (f *fakeTracker) addClosed(key, resolution string) {
	issue := &jira.Issue{Key: key, Fields: jira.IssueFields{
		Status: &jira.Status{Name: "Closed", StatusCategory: &jira.StatusCategory{Key: "done", Name: "Done"}},
	}}
	if resolution != "" {
		issue.Fields.Resolution = &jira.Resolution{Name: resolution}
	}
	f.issues[key] = issue
}

func notFound() error {
	return fmt.Errorf("getting issue: %w", &jira.APIError{
		StatusCode:    http.StatusNotFound,
		ErrorMessages: []string{"Issue does not exist or you do not have permission to see it."},
	})
}

func (f *fakeTracker) GetIssue(_ context.Context, key string, _ ...string) (*jira.Issue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, key)
	if err := f.issueErrs[key]; err != nil {
		return nil, err
	}
	issue, ok := f.issues[key]
	if !ok {
		return nil, notFound()
	}
	return issue, nil
}

func (f *fakeTracker) AddFixVersion(_ context.Context, key, versionID string) error {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	delay := f.editDelay
	f.mu.Unlock()

	time.Sleep(delay)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if err := f.editErrs[key]; err != nil {
		return err
	}
	f.fixVersions[key] = append(f.fixVersions[key], versionID)
	return nil
}

func (f *fakeTracker) GetProject(_ context.Context, idOrKey string) (*jira.Project, error) {
	if idOrKey != f.project.Key && idOrKey != f.project.ID {
		return nil, &jira.APIError{StatusCode: http.StatusNotFound, ErrorMessages: []string{"No project could be found with key '" + idOrKey + "'."}}
	}
	project := f.project
	return &project, nil
}

func (f *fakeTracker) ListProjectVersions(_ context.Context, _ string) ([]jira.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]jira.Version(nil), f.versions...), nil
}

func (f *fakeTracker) CreateVersion(_ context.Context, request jira.CreateVersionRequest) (*jira.Version, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, request)
	version := jira.Version{
		ID:          strconv.Itoa(20000 + len(f.creates)),
		Name:        request.Name,
		Description: request.Description,
		Released:    request.Released,
		ReleaseDate: request.ReleaseDate,
	}
	f.versions = append(f.versions, version)
	return &version, nil
}
