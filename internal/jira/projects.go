package jira

import (
	"context"
	"fmt"
	"net/url"
)

// GetProject retrieves a project by id or key
func (client *Client) GetProject(ctx context.Context, idOrKey string) (*Project, error) {
	var project Project
	if err := client.get(ctx, "/project/"+url.PathEscape(idOrKey), nil, &project); err != nil {
		return nil, fmt.Errorf("getting project %s: %w", idOrKey, err)
	}
	return &project, nil
}

// ListProjectVersions returns every version of the project
func (client *Client) ListProjectVersions(ctx context.Context, idOrKey string) ([]Version, error) {
	var versions []Version
	if err := client.get(ctx, "/project/"+url.PathEscape(idOrKey)+"/versions", nil, &versions); err != nil {
		return nil, fmt.Errorf("listing versions of project %s: %w", idOrKey, err)
	}
	return versions, nil
}

// CreateVersion creates a new project version
func (client *Client) CreateVersion(ctx context.Context, request CreateVersionRequest) (*Version, error) {
	var version Version
	if err := client.post(ctx, "/version", request, &version); err != nil {
		return nil, fmt.Errorf("creating version %q: %w", request.Name, err)
	}
	return &version, nil
}
