package models

// TagStatus represents the outcome of attaching a release to a single ticket
type TagStatus interface {
	isTagStatus()
}

type tagStatusTagged struct{}
type tagStatusDryRun struct{}
type tagStatusTolerated struct{ Reason string }
type tagStatusFailed struct{ Error string }

func (tagStatusTagged) isTagStatus()    {}
func (tagStatusDryRun) isTagStatus()    {}
func (tagStatusTolerated) isTagStatus() {}
func (tagStatusFailed) isTagStatus()    {}

// TagStatus variants
var (
	// Tagged indicates the fix version was added to the ticket
	Tagged TagStatus = tagStatusTagged{}
	// DryRun indicates the edit was skipped because of dry-run mode
	DryRun TagStatus = tagStatusDryRun{}
)

// Tolerated creates a TagStatus for an expected failure (e.g., deleted ticket)
func Tolerated(reason string) TagStatus {
	return tagStatusTolerated{Reason: reason}
}

// Failed creates a TagStatus for an unexpected failure
func Failed(err string) TagStatus {
	return tagStatusFailed{Error: err}
}

// TagResult represents the result of tagging a single ticket
type TagResult struct {
	// Ticket key
	Ticket string
	// Status of the operation
	Status TagStatus
}

// IsStatusTagged returns true if status is Tagged
func IsStatusTagged(s TagStatus) bool {
	_, ok := s.(tagStatusTagged)
	return ok
}

// IsStatusDryRun returns true if status is DryRun
func IsStatusDryRun(s TagStatus) bool {
	_, ok := s.(tagStatusDryRun)
	return ok
}

// IsStatusTolerated returns true if status is Tolerated
func IsStatusTolerated(s TagStatus) bool {
	_, ok := s.(tagStatusTolerated)
	return ok
}

// IsStatusFailed returns true if status is Failed
func IsStatusFailed(s TagStatus) bool {
	_, ok := s.(tagStatusFailed)
	return ok
}

// IsStatusSuccess returns true if status is Tagged or DryRun
func IsStatusSuccess(s TagStatus) bool {
	return IsStatusTagged(s) || IsStatusDryRun(s)
}

// GetStatusReason returns the reason string for Tolerated or Failed statuses
func GetStatusReason(s TagStatus) string {
	if tolerated, ok := s.(tagStatusTolerated); ok {
		return tolerated.Reason
	}
	if failed, ok := s.(tagStatusFailed); ok {
		return failed.Error
	}
	return ""
}

// CountTagResults tallies results by status
func CountTagResults(results []TagResult) (tagged, dryRun, tolerated, failed int) {
	for _, r := range results {
		switch {
		case IsStatusTagged(r.Status):
			tagged++
		case IsStatusDryRun(r.Status):
			dryRun++
		case IsStatusTolerated(r.Status):
			tolerated++
		case IsStatusFailed(r.Status):
			failed++
		}
	}
	return tagged, dryRun, tolerated, failed
}
