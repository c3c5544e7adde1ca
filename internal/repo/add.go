package repo

import (
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/worktree"
)

// Add stages the working copy of name. Adding content identical to the
// current commit unstages the file instead, including a pending removal.
func (r *Repository) Add(name string) error {
	if err := worktree.ValidateName(name); err != nil {
		return err
	}
	data, err := r.Tree.Read(name)
	if err != nil {
		return err
	}
	_, head, err := r.head()
	if err != nil {
		return err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return err
	}

	blobID := r.Objects.HashBlob(data)
	if idx.UnstageIfUnchanged(name, blobID, head) {
		r.log.Debug().Str("file", name).Msg("content matches HEAD, unstaged")
	} else {
		if _, err := r.Objects.PutBlob(data); err != nil {
			return err
		}
		idx.Stage(name, blobID)
		r.log.Debug().Str("file", name).Str("blob", blobID).Msg("staged")
	}
	return r.saveIndex(idx)
}

// Rm unstages name if it is staged. Otherwise, if the current commit tracks
// it, it is staged for removal and deleted from the working tree.
func (r *Repository) Rm(name string) error {
	_, head, err := r.head()
	if err != nil {
		return err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return err
	}

	action, err := idx.Remove(name, head)
	if err != nil {
		return err
	}
	if action == index.StagedForRemoval {
		if err := r.Tree.Delete(name); err != nil {
			return err
		}
	}
	r.log.Debug().Str("file", name).Stringer("action", action).Msg("removed")
	return r.saveIndex(idx)
}
