package jira

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetIssue retrieves an issue by key or id, restricted to the given fields
func (client *Client) GetIssue(ctx context.Context, key string, fields ...string) (*Issue, error) {
	var query url.Values
	if len(fields) > 0 {
		query = url.Values{"fields": {strings.Join(fields, ",")}}
	}

	var issue Issue
	if err := client.get(ctx, "/issue/"+url.PathEscape(key), query, &issue); err != nil {
		return nil, fmt.Errorf("getting issue %s: %w", key, err)
	}
	return &issue, nil
}

// EditIssue applies an update to an issue. Jira answers 204 No Content.
func (client *Client) EditIssue(ctx context.Context, key string, request EditIssueRequest) error {
	if err := client.put(ctx, "/issue/"+url.PathEscape(key), request); err != nil {
		return fmt.Errorf("editing issue %s: %w", key, err)
	}
	return nil
}

// AddFixVersion adds versionID to the issue's fix versions, keeping any
// versions already associated with it.
func (client *Client) AddFixVersion(ctx context.Context, key, versionID string) error {
	return client.EditIssue(ctx, key, EditIssueRequest{
		Update: map[string][]FieldOperation{
			"fixVersions": {{Add: VersionRef{ID: versionID}}},
		},
	})
}
