package git

import (
	"errors"

	"github.com/wahlandcase/attuned.jirarelease/internal/models"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// shortHashLen is the length of the hashes handed to the extractor
const shortHashLen = 7

// Range describes the commits that make up a release
type Range struct {
	// From is excluded along with everything reachable from it. Empty means
	// the nearest tag behind To, or the full history when there is none.
	From string
	// To defaults to HEAD
	To string
}

// Commits gets the commits in to that are not reachable from from, newest
// first. Merge commits are walked through so feature branch commits are kept.
func Commits(repoPath string, r Range) ([]models.CommitInfo, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, err
	}

	to := r.To
	if to == "" {
		to = "HEAD"
	}
	toHash, err := repo.ResolveRevision(plumbing.Revision(to))
	if err != nil {
		return nil, &RefNotFoundError{Refs: []string{to}}
	}

	from := r.From
	if from == "" {
		from, err = NearestTag(repo, *toHash)
		if err != nil {
			return nil, err
		}
	}

	// Build set of commits reachable from the previous release
	baseCommits := make(map[plumbing.Hash]bool)
	if from != "" {
		fromHash, err := repo.ResolveRevision(plumbing.Revision(from))
		if err != nil {
			return nil, &RefNotFoundError{Refs: []string{from}}
		}
		baseIter, err := repo.Log(&git.LogOptions{From: *fromHash})
		if err != nil {
			return nil, err
		}
		err = baseIter.ForEach(func(c *object.Commit) error {
			baseCommits[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	headIter, err := repo.Log(&git.LogOptions{From: *toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, err
	}

	var commits []models.CommitInfo
	seen := make(map[plumbing.Hash]bool)
	err = headIter.ForEach(func(c *object.Commit) error {
		if seen[c.Hash] || baseCommits[c.Hash] {
			return nil
		}
		seen[c.Hash] = true
		commits = append(commits, models.NewCommitInfo(c.Hash.String()[:shortHashLen], c.Message))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}

// NearestTag returns the most recent tag reachable from (but not pointing
// at) the commit at, or "" when no such tag exists. Annotated tags are
// peeled to their commit.
func NearestTag(repo *git.Repository, at plumbing.Hash) (string, error) {
	tagged, err := tagsByCommit(repo)
	if err != nil {
		return "", err
	}
	if len(tagged) == 0 {
		return "", nil
	}

	iter, err := repo.Log(&git.LogOptions{From: at, Order: git.LogOrderCommitterTime})
	if err != nil {
		return "", err
	}

	var nearest string
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == at {
			return nil
		}
		if name, ok := tagged[c.Hash]; ok {
			nearest = name
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return "", err
	}
	return nearest, nil
}

// tagsByCommit maps each tagged commit to the first of its tag names
func tagsByCommit(repo *git.Repository) (map[plumbing.Hash]string, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, err
	}

	tagged := make(map[plumbing.Hash]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				// Tags on trees or blobs never mark a release
				return nil
			}
			hash = commit.Hash
		}
		name := ref.Name().Short()
		if existing, ok := tagged[hash]; !ok || name < existing {
			tagged[hash] = name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tagged, nil
}
