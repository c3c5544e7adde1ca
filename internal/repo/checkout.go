package repo

import (
	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/repo/object"
	"github.com/keshon/gitlet/internal/repo/worktree"
)

// CheckoutFile restores name from the current commit. The index is not
// touched.
func (r *Repository) CheckoutFile(name string) error {
	_, head, err := r.head()
	if err != nil {
		return err
	}
	return r.restoreFile(head, name)
}

// CheckoutCommitFile restores name from the commit identified by commitID,
// which may be abbreviated.
func (r *Repository) CheckoutCommitFile(commitID, name string) error {
	c, err := r.resolveCommit(commitID)
	if err != nil {
		return err
	}
	return r.restoreFile(c, name)
}

func (r *Repository) restoreFile(c *object.Commit, name string) error {
	if worktree.ValidateName(name) != nil {
		return fileNotInCommit(name)
	}
	blobID, ok := c.BlobFor(name)
	if !ok {
		return fileNotInCommit(name)
	}
	data, err := r.Objects.GetBlob(blobID)
	if err != nil {
		return err
	}
	return r.Tree.Write(name, data)
}

func fileNotInCommit(name string) error {
	return errors.New(errors.ErrNotFound, "File does not exist in that commit.").WithDetail("file", name)
}

func (r *Repository) resolveCommit(commitID string) (*object.Commit, error) {
	id, err := r.Objects.ResolveCommitID(commitID)
	if err != nil {
		return nil, err
	}
	return r.Objects.GetCommit(id)
}

// CheckoutBranch switches the working tree and HEAD to branch, then clears
// the index.
func (r *Repository) CheckoutBranch(branch string) error {
	target, err := r.Meta.GetBranch(branch)
	if err != nil {
		return err
	}
	current, head, err := r.head()
	if err != nil {
		return err
	}
	if branch == current {
		return errors.New(errors.ErrInvalidOperation, "No need to checkout the current branch.")
	}

	c, err := r.Objects.GetCommit(target.CommitID)
	if err != nil {
		return err
	}
	if err := r.switchTo(c, head); err != nil {
		return err
	}
	if err := r.Meta.SetHead(branch); err != nil {
		return err
	}
	r.log.Info().Str("from", current).Str("to", branch).Msg("switched branch")
	return r.clearIndex()
}

// Reset moves the current branch to commitID, which may be abbreviated, and
// makes the working tree match it. HEAD keeps naming the same branch.
func (r *Repository) Reset(commitID string) error {
	target, err := r.resolveCommit(commitID)
	if err != nil {
		return err
	}
	current, head, err := r.head()
	if err != nil {
		return err
	}
	if err := r.switchTo(target, head); err != nil {
		return err
	}
	if err := r.Meta.SetBranchCommitID(current, target.ID); err != nil {
		return err
	}
	r.log.Info().Str("branch", current).Str("commit", target.ID).Msg("reset")
	return r.clearIndex()
}

func (r *Repository) clearIndex() error {
	idx, err := r.loadIndex()
	if err != nil {
		return err
	}
	idx.Clear()
	return r.saveIndex(idx)
}
