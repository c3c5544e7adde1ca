package repo

import (
	"github.com/keshon/gitlet/internal/repo/object"
	"github.com/keshon/gitlet/internal/util"
)

// Problem is an object that is damaged, or missing while something refers
// to it.
type Problem struct {
	object.ObjectCheck
	ReferencedBy []string
}

// VerifyReport summarizes a repository check.
type VerifyReport struct {
	Objects  int
	Problems []Problem
}

func (v *VerifyReport) OK() bool { return len(v.Problems) == 0 }

// Verify re-hashes every stored object and checks that everything reachable
// from a branch is present.
func (r *Repository) Verify() (*VerifyReport, error) {
	checks, err := r.Objects.Verify()
	if err != nil {
		return nil, err
	}
	rep := &VerifyReport{Objects: len(checks)}
	status := map[string]object.ObjectCheck{}
	for _, c := range checks {
		status[c.ID] = c
		if c.Status != object.OK {
			rep.Problems = append(rep.Problems, Problem{ObjectCheck: c})
		}
	}

	missing := map[string]map[string]struct{}{}
	add := func(id, from string) {
		if missing[id] == nil {
			missing[id] = map[string]struct{}{}
		}
		missing[id][from] = struct{}{}
	}
	refer := func(id, from string) {
		if _, ok := status[id]; !ok {
			add(id, from)
		}
	}

	branches, err := r.Meta.ListBranches()
	if err != nil {
		return nil, err
	}

	type edge struct{ id, from string }
	var queue []edge
	for _, b := range branches {
		queue = append(queue, edge{b.CommitID, "branch " + b.Name})
	}
	walked := map[string]bool{}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if walked[e.id] {
			if missing[e.id] != nil {
				add(e.id, e.from)
			}
			continue
		}
		walked[e.id] = true

		c, err := r.Objects.GetCommit(e.id)
		if err != nil {
			// damaged commits are already reported; a stored object that is
			// not a commit counts as a missing commit
			if c, ok := status[e.id]; !ok || c.Status == object.OK {
				add(e.id, e.from)
			}
			continue
		}
		for _, p := range c.Parents() {
			queue = append(queue, edge{p, "commit " + e.id})
		}
		for name, blobID := range c.Files {
			refer(blobID, "commit "+e.id+" file "+name)
		}
	}

	for _, id := range util.SortedKeys(missing) {
		rep.Problems = append(rep.Problems, Problem{
			ObjectCheck:  object.ObjectCheck{ID: id, Status: object.Missing},
			ReferencedBy: util.SortedKeys(missing[id]),
		})
	}
	r.log.Debug().Int("objects", rep.Objects).Int("problems", len(rep.Problems)).Msg("verified")
	return rep, nil
}
