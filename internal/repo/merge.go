package repo

import (
	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/logging"
	"github.com/keshon/gitlet/internal/repo/graph"
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/merge"
)

// Merge merges branch given into the current branch.
//
// Checks run in this order: staged changes, missing branch, self merge,
// untracked files in the way, given already merged. When the current commit
// is an ancestor of given the branch is fast-forwarded without a new commit.
// Otherwise a two-parent commit is created, with conflicting files written
// with markers and staged as they are.
func (r *Repository) Merge(given string) (*merge.Result, error) {
	done := logging.LogOperationStart(r.log, "merge")
	defer done()

	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	if !idx.IsEmpty() {
		return nil, errors.New(errors.ErrDirtyStagingArea, "You have uncommitted changes.")
	}
	target, err := r.Meta.GetBranch(given)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNotFound) {
			return nil, errors.New(errors.ErrNotFound, "A branch with that name does not exist.").WithDetail("branch", given)
		}
		return nil, err
	}
	current, head, err := r.head()
	if err != nil {
		return nil, err
	}
	if given == current {
		return nil, errors.New(errors.ErrSelfMerge, "Cannot merge a branch with itself.")
	}
	other, err := r.Objects.GetCommit(target.CommitID)
	if err != nil {
		return nil, err
	}

	headHistory, err := graph.Walk(r.Objects, head.ID)
	if err != nil {
		return nil, err
	}
	givenHistory, err := graph.Walk(r.Objects, other.ID)
	if err != nil {
		return nil, err
	}
	splitID, err := graph.FindSplit(givenHistory, headHistory)
	if err != nil {
		return nil, err
	}

	switch splitID {
	case other.ID:
		return nil, errors.New(errors.ErrAlreadyUpToDate, "Given branch is an ancestor of the current branch.")
	case head.ID:
		if err := r.switchTo(other, head); err != nil {
			return nil, err
		}
		if err := r.Meta.SetBranchCommitID(current, other.ID); err != nil {
			return nil, err
		}
		r.log.Info().Str("branch", current).Str("commit", other.ID).Msg("fast-forwarded")
		return &merge.Result{Kind: merge.FastForward, CommitID: other.ID}, nil
	}

	split, err := r.Objects.GetCommit(splitID)
	if err != nil {
		return nil, err
	}
	plan := merge.Classify(head.Files, other.Files, split.Files)

	// content of every file the merge writes, keyed by name
	writes := map[string][]byte{}
	incoming := map[string]string{}
	for _, d := range plan {
		var data []byte
		switch d.Action {
		case merge.TakeTheirs:
			data, err = r.Objects.GetBlob(d.Theirs)
		case merge.Conflict:
			data, err = r.conflictContent(d)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		writes[d.Name] = data
		incoming[d.Name] = r.Objects.HashBlob(data)
	}
	if err := r.checkUntracked(head, incoming); err != nil {
		return nil, err
	}

	if err := r.applyPlan(plan, writes, idx); err != nil {
		return nil, err
	}
	if err := r.saveIndex(idx); err != nil {
		return nil, err
	}
	c, err := r.commit(merge.CommitMessage(given, current), other.ID)
	if err != nil {
		return nil, err
	}

	res := &merge.Result{Kind: merge.Clean, CommitID: c.ID, Conflicts: plan.Conflicts()}
	if len(res.Conflicts) > 0 {
		res.Kind = merge.Conflicted
	}
	r.log.Info().Str("commit", c.ID).Stringer("kind", res.Kind).Strs("conflicts", res.Conflicts).Msg("merged")
	return res, nil
}

func (r *Repository) conflictContent(d merge.Decision) ([]byte, error) {
	var ours, theirs []byte
	var err error
	if d.Ours != "" {
		if ours, err = r.Objects.GetBlob(d.Ours); err != nil {
			return nil, err
		}
	}
	if d.Theirs != "" {
		if theirs, err = r.Objects.GetBlob(d.Theirs); err != nil {
			return nil, err
		}
	}
	return merge.ConflictContent(ours, theirs), nil
}

func (r *Repository) applyPlan(plan merge.Plan, writes map[string][]byte, idx *index.Index) error {
	for _, d := range plan {
		switch d.Action {
		case merge.TakeTheirs, merge.Conflict:
			data := writes[d.Name]
			blobID, err := r.Objects.PutBlob(data)
			if err != nil {
				return err
			}
			if err := r.Tree.Write(d.Name, data); err != nil {
				return err
			}
			idx.Stage(d.Name, blobID)
		case merge.Delete:
			idx.StageRemoval(d.Name)
			if err := r.Tree.Delete(d.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
