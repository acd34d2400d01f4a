// Package jira is a small typed client for the Jira REST API v2, covering
// the calls needed to gate and annotate releases: reading issue status,
// adding fix versions, and listing or creating project versions.
//
// The client performs no retries. Transient failures surface as ordinary
// errors and callers decide whether to tolerate them.
package jira
