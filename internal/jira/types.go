package jira

// Issue is the subset of a Jira issue read by the release gate
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields holds the requested issue fields
type IssueFields struct {
	Summary    string      `json:"summary"`
	Status     *Status     `json:"status"`
	Resolution *Resolution `json:"resolution"`
}

// Status is an issue workflow status
type Status struct {
	Name           string          `json:"name"`
	StatusCategory *StatusCategory `json:"statusCategory"`
}

// StatusCategory groups statuses: "new", "indeterminate", "done"
type StatusCategory struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Resolution is set when an issue has been resolved
type Resolution struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatusCategoryDone is the display name of the terminal status category
const StatusCategoryDone = "Done"

// IsDone reports whether the issue is in the Done status category
func (f IssueFields) IsDone() bool {
	return f.Status != nil && f.Status.StatusCategory != nil && f.Status.StatusCategory.Name == StatusCategoryDone
}

// Project is a Jira project
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Version is a Jira project version (a release record)
type Version struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProjectID   int64  `json:"projectId,omitempty"`
	Released    bool   `json:"released"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// CreateVersionRequest contains the fields for creating a version
type CreateVersionRequest struct {
	Name        string `json:"name"`
	ProjectID   int64  `json:"projectId"`
	Description string `json:"description"`
	Released    bool   `json:"released"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

// EditIssueRequest is the body of an issue edit. Only Update is used:
// it applies additive/subtractive operations per field.
type EditIssueRequest struct {
	Update map[string][]FieldOperation `json:"update"`
}

// FieldOperation is a single {"add": ...} / {"remove": ...} / {"set": ...} operation
type FieldOperation struct {
	Add    any `json:"add,omitempty"`
	Remove any `json:"remove,omitempty"`
	Set    any `json:"set,omitempty"`
}

// VersionRef references a version by id inside a field operation
type VersionRef struct {
	ID string `json:"id"`
}
