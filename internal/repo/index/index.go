// Package index holds the staging area: files staged for addition with the
// blob they will commit, and files staged for removal.
package index

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/repo/object"
	"github.com/keshon/gitlet/internal/util"
)

// RemoveAction reports what Remove did.
type RemoveAction int

const (
	// Unstaged means the file was only staged for addition and is no longer.
	Unstaged RemoveAction = iota + 1
	// StagedForRemoval means the tracked file will be dropped by the next
	// commit. The caller deletes the working copy.
	StagedForRemoval
)

func (a RemoveAction) String() string {
	switch a {
	case Unstaged:
		return "unstaged"
	case StagedForRemoval:
		return "staged-for-removal"
	}
	return fmt.Sprintf("RemoveAction(%d)", int(a))
}

// BlobReader reads staged content back.
type BlobReader interface {
	GetBlob(id string) ([]byte, error)
}

// Index is the staging area. A filename is never both added and removed.
type Index struct {
	additions map[string]string
	removals  map[string]struct{}
}

type indexFile struct {
	Additions map[string]string `json:"additions"`
	Removals  []string          `json:"removals"`
}

// New returns an empty index.
func New() *Index {
	return &Index{
		additions: map[string]string{},
		removals:  map[string]struct{}{},
	}
}

// Load reads the index stored at path. A missing file is an empty index.
func Load(fsys fs.FS, path string) (*Index, error) {
	idx := New()

	data, err := fsys.ReadFile(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("failed to read index %q: %w", path, err)
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode index %q: %w", path, err)
	}
	for name, id := range f.Additions {
		idx.additions[name] = id
	}
	for _, name := range f.Removals {
		if _, added := idx.additions[name]; added {
			return nil, fmt.Errorf("index %q is corrupt: %q is both added and removed", path, name)
		}
		idx.removals[name] = struct{}{}
	}
	return idx, nil
}

// Save writes the index to path atomically.
func (idx *Index) Save(fsys fs.FS, path string) error {
	f := indexFile{
		Additions: idx.additions,
		Removals:  idx.RemovedNames(),
	}
	if err := util.WriteJSON(fsys, path, f); err != nil {
		return fmt.Errorf("failed to save index %q: %w", path, err)
	}
	return nil
}

// Stage records name for addition with blobID. Staging again replaces the
// previous blob, and a pending removal of name is cancelled.
func (idx *Index) Stage(name, blobID string) {
	idx.additions[name] = blobID
	delete(idx.removals, name)
}

// StageRemoval records name for removal, dropping any pending addition.
func (idx *Index) StageRemoval(name string) {
	delete(idx.additions, name)
	idx.removals[name] = struct{}{}
}

// UnstageIfUnchanged clears name from the index when commit already tracks
// it with blobID, and reports whether it did.
func (idx *Index) UnstageIfUnchanged(name, blobID string, commit *object.Commit) bool {
	tracked, ok := commit.BlobFor(name)
	if !ok || tracked != blobID {
		return false
	}
	delete(idx.additions, name)
	delete(idx.removals, name)
	return true
}

// Remove unstages a staged file, or else stages a tracked file for removal.
// A file that is neither fails with NothingToRemove.
func (idx *Index) Remove(name string, commit *object.Commit) (RemoveAction, error) {
	if _, staged := idx.additions[name]; staged {
		delete(idx.additions, name)
		return Unstaged, nil
	}
	if commit.Tracks(name) {
		idx.StageRemoval(name)
		return StagedForRemoval, nil
	}
	return 0, errors.New(errors.ErrNothingToRemove, "No reason to remove the file.").WithDetail("file", name)
}

func (idx *Index) IsStaged(name string) bool {
	_, ok := idx.additions[name]
	return ok
}

func (idx *Index) IsRemoved(name string) bool {
	_, ok := idx.removals[name]
	return ok
}

// StagedBlob returns the blob staged for name.
func (idx *Index) StagedBlob(name string) (string, bool) {
	id, ok := idx.additions[name]
	return id, ok
}

// ContentOf reads the staged content of name back from blobs.
func (idx *Index) ContentOf(name string, blobs BlobReader) ([]byte, error) {
	id, ok := idx.additions[name]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "%s is not staged.", name)
	}
	return blobs.GetBlob(id)
}

// Additions returns a copy of the staged additions.
func (idx *Index) Additions() map[string]string {
	return maps.Clone(idx.additions)
}

// StagedNames lists staged additions in lexicographic order.
func (idx *Index) StagedNames() []string {
	return util.SortedKeys(idx.additions)
}

// RemovedNames lists staged removals in lexicographic order.
func (idx *Index) RemovedNames() []string {
	names := make([]string, 0, len(idx.removals))
	for name := range idx.removals {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (idx *Index) IsEmpty() bool {
	return len(idx.additions) == 0 && len(idx.removals) == 0
}

func (idx *Index) Clear() {
	clear(idx.additions)
	clear(idx.removals)
}
