package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
)

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FindRepoRoot walks up from start to the enclosing git repository
func FindRepoRoot(start string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if IsGitRepo(path) {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", &RefNotFoundError{Refs: []string{start}, Repo: true}
		}
		path = parent
	}
}

// FetchTags fetches tags from origin using git CLI (to inherit SSH agent)
func FetchTags(repoPath string) error {
	cmd := exec.Command("git", "fetch", "--tags", "origin")
	cmd.Dir = repoPath
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.CombinedOutput()
	if err != nil {
		outputStr := strings.TrimSpace(string(output))
		if outputStr != "" {
			return &GitError{Command: "fetch", Output: outputStr}
		}
		return &GitError{Command: "fetch", Output: "Failed to fetch from remote (check network/auth)"}
	}

	return nil
}

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// RefNotFoundError indicates a revision (or the repository itself) could
// not be found
type RefNotFoundError struct {
	Refs []string
	// Repo is set when no repository encloses the path in Refs
	Repo bool
}

func (e *RefNotFoundError) Error() string {
	if e.Repo {
		return "Not inside a git repository: " + strings.Join(e.Refs, ", ")
	}
	return "Revision not found: " + strings.Join(e.Refs, ", ")
}
