package models

// CommitInfo contains information about a commit included in a release
type CommitInfo struct {
	// Hash is the short commit hash (7 characters)
	Hash string
	// Message is the full commit message
	Message string
}

// NewCommitInfo creates a new CommitInfo
func NewCommitInfo(hash, message string) CommitInfo {
	return CommitInfo{
		Hash:    hash,
		Message: message,
	}
}

// Subject returns the first line of the commit message
func (c CommitInfo) Subject() string {
	for i, r := range c.Message {
		if r == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
