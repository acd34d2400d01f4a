package release

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/wahlandcase/attuned.jirarelease/internal/jira"
)

// DryRunVersionID is the id given to versions synthesized in dry-run mode
const DryRunVersionID = "dry_run_id"

// releaseDateLayout is the ISO-8601 date Jira accepts for releaseDate
const releaseDateLayout = "2006-01-02"

// Reconciler finds or creates the Jira version for a release
type Reconciler struct {
	Versions       VersionStore
	DryRun         bool
	Released       bool
	SetReleaseDate bool
	// Now defaults to time.Now
	Now    func() time.Time
	Logger *slog.Logger
}

// FindOrCreate returns the version named name in the project, creating it
// when absent. Running it twice with the same name never creates twice.
func (r *Reconciler) FindOrCreate(ctx context.Context, projectID, name, description string) (*jira.Version, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	versions, err := r.Versions.ListProjectVersions(ctx, projectID)
	if err != nil {
		return nil, err
	}

	logger.Info("looking for version", "name", name, "project", projectID)
	var matches []jira.Version
	for _, version := range versions {
		if version.Name == name {
			matches = append(matches, version)
		}
	}
	if len(matches) > 1 {
		logger.Warn("multiple versions share a name, using the first", "name", name, "count", len(matches))
	}
	if len(matches) > 0 {
		existing := matches[0]
		logger.Info("found existing version", "id", existing.ID, "name", name)
		if existing.ID == "" {
			return nil, ErrMissingReleaseID
		}
		return &existing, nil
	}

	logger.Info("no existing version found, creating new", "name", name)

	var created *jira.Version
	if r.DryRun {
		logger.Info("dry-run: making a fake version", "name", name)
		created = &jira.Version{ID: DryRunVersionID, Name: name}
	} else {
		request, err := r.createRequest(projectID, name, description)
		if err != nil {
			return nil, err
		}
		created, err = r.Versions.CreateVersion(ctx, request)
		if err != nil {
			return nil, err
		}
	}

	if created == nil || created.ID == "" {
		return nil, ErrMissingReleaseID
	}
	logger.Info("made new version", "id", created.ID, "name", created.Name)
	return created, nil
}

func (r *Reconciler) createRequest(projectID, name, description string) (jira.CreateVersionRequest, error) {
	numericID, err := strconv.ParseInt(projectID, 10, 64)
	if err != nil {
		return jira.CreateVersionRequest{}, fmt.Errorf("project id %q is not numeric: %w", projectID, err)
	}

	request := jira.CreateVersionRequest{
		Name:        name,
		ProjectID:   numericID,
		Description: description,
		Released:    r.Released,
	}
	if r.SetReleaseDate {
		now := time.Now
		if r.Now != nil {
			now = r.Now
		}
		request.ReleaseDate = now().UTC().Format(releaseDateLayout)
	}
	return request, nil
}
