package repo

import (
	"github.com/keshon/gitlet/internal/errors"
)

// Branch creates a branch at the current commit. HEAD does not move.
func (r *Repository) Branch(name string) error {
	_, head, err := r.head()
	if err != nil {
		return err
	}
	_, err = r.Meta.CreateBranch(name, head.ID)
	return err
}

// RmBranch deletes the branch pointer only.
func (r *Repository) RmBranch(name string) error {
	current, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	if name == current {
		return errors.New(errors.ErrInvalidOperation, "Cannot remove the current branch.")
	}
	return r.Meta.DeleteBranch(name)
}
