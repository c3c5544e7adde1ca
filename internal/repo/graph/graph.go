// Package graph builds commits and walks the commit DAG.
package graph

import (
	"fmt"
	"time"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/logging"
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/object"
)

// CommitReader loads commits by ID.
type CommitReader interface {
	GetCommit(id string) (*object.Commit, error)
}

// CommitStore loads and persists commits.
type CommitStore interface {
	CommitReader
	PutCommit(c *object.Commit) (string, error)
}

// History is the set of commits reachable from a start commit, in the order
// they were reached.
type History struct {
	ids  []string
	seen map[string]struct{}
}

// IDs returns the reachable commits in breadth-first order, start first.
func (h *History) IDs() []string { return h.ids }

func (h *History) Len() int { return len(h.ids) }

func (h *History) Contains(id string) bool {
	_, ok := h.seen[id]
	return ok
}

// Walk collects every commit reachable from id through parent and merge-parent
// edges. Each commit is visited once, so shared ancestors do not blow up.
func Walk(r CommitReader, id string) (*History, error) {
	h := &History{seen: map[string]struct{}{}}
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == "" || h.Contains(cur) {
			continue
		}
		c, err := r.GetCommit(cur)
		if err != nil {
			return nil, fmt.Errorf("failed to walk history at %q: %w", cur, err)
		}
		h.seen[cur] = struct{}{}
		h.ids = append(h.ids, cur)
		queue = append(queue, c.Parents()...)
	}
	return h, nil
}

// FindSplit returns the first commit of b, in b's order, that a also reaches.
// Merge passes the given branch's history as a and HEAD's as b, so the split
// point is the common ancestor nearest to HEAD in breadth-first order.
func FindSplit(a, b *History) (string, error) {
	for _, id := range b.ids {
		if a.Contains(id) {
			return id, nil
		}
	}
	return "", errors.New(errors.ErrNoCommonAncestor, "No common ancestor exists.")
}

// FirstParentChain returns the commits from id back to the root following
// first parents only, newest first.
func FirstParentChain(r CommitReader, id string) ([]*object.Commit, error) {
	var chain []*object.Commit
	seen := map[string]bool{}
	for cur := id; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("commit %q appears twice in its own history", cur)
		}
		seen[cur] = true

		c, err := r.GetCommit(cur)
		if err != nil {
			return nil, fmt.Errorf("failed to read commit %q: %w", cur, err)
		}
		chain = append(chain, c)
		cur = c.Parent
	}
	return chain, nil
}

// CreateCommit snapshots parent's files with idx applied and persists the
// result. The root commit and merge commits may be empty; any other commit
// needs at least one staged change.
func CreateCommit(s CommitStore, message, parentID, mergeParentID string, idx *index.Index, now time.Time) (*object.Commit, error) {
	var parent *object.Commit
	if parentID != "" {
		if mergeParentID == "" && idx.IsEmpty() {
			return nil, errors.New(errors.ErrNothingToCommit, "No changes added to the commit.")
		}
		p, err := s.GetCommit(parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent commit: %w", err)
		}
		parent = p
	}

	files := parent.CloneFiles()
	for name, blobID := range idx.Additions() {
		files[name] = blobID
	}
	for _, name := range idx.RemovedNames() {
		delete(files, name)
	}

	c := &object.Commit{
		Message:     message,
		Timestamp:   now.UTC().Round(0),
		Parent:      parentID,
		MergeParent: mergeParentID,
		Files:       files,
	}
	if _, err := s.PutCommit(c); err != nil {
		return nil, fmt.Errorf("failed to store commit: %w", err)
	}

	logger := logging.GetLogger("graph")
	logger.Debug().
		Str("commit", c.ID).
		Str("parent", parentID).
		Str("merge_parent", mergeParentID).
		Int("files", len(files)).
		Msg("commit created")
	return c, nil
}
