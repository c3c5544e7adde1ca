// Package worktree reads and rewrites the user's working directory.
package worktree

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/keshon/gitlet/internal/config"
	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/logging"
	"github.com/keshon/gitlet/internal/repo/object"
	"github.com/keshon/gitlet/internal/util"
)

// BlobReader loads blob content.
type BlobReader interface {
	GetBlob(id string) ([]byte, error)
}

// BlobHasher computes the ID content would be stored under.
type BlobHasher interface {
	HashBlob(content []byte) string
}

// Tree is the flat working directory of a repository. Files live directly in
// the root; subdirectories are never tracked.
type Tree struct {
	root   string
	fs     fs.FS
	ignore *Ignore
	log    zerolog.Logger
}

// New opens the working tree at root and loads its ignore rules.
func New(root string, fsys fs.FS) (*Tree, error) {
	ig, err := NewIgnore(fsys, filepath.Join(root, config.IgnoreFile))
	if err != nil {
		return nil, err
	}
	return &Tree{root: root, fs: fsys, ignore: ig, log: logging.GetLogger("worktree")}, nil
}

func (t *Tree) Root() string { return t.root }

// ValidateName rejects names that do not denote a file directly in the root.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Newf(errors.ErrInvalidInput, "Invalid file name %q.", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "Invalid file name %q: files must be in the working directory root.", name)
	case name == config.RepoDir:
		return errors.Newf(errors.ErrInvalidInput, "Invalid file name %q.", name)
	}
	return nil
}

func (t *Tree) path(name string) string {
	return filepath.Join(t.root, name)
}

// Files lists the plain, non-ignored files in the root, sorted.
func (t *Tree) Files() ([]string, error) {
	entries, err := t.fs.ReadDir(t.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list working tree %q: %w", t.root, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || t.ignore.Match(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

// Exists reports whether name is a regular file in the root.
func (t *Tree) Exists(name string) bool {
	fi, err := t.fs.Stat(t.path(name))
	return err == nil && fi.Mode().IsRegular()
}

// Read returns the content of name. A missing file fails with NotFound.
func (t *Tree) Read(name string) ([]byte, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := t.fs.ReadFile(t.path(name))
	if err != nil {
		if t.fs.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "File does not exist.").WithDetail("file", name)
		}
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	}
	return data, nil
}

// Write replaces name with data.
func (t *Tree) Write(name string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := fs.WriteFileAtomic(t.fs, t.path(name), data); err != nil {
		return fmt.Errorf("failed to write %q: %w", name, err)
	}
	return nil
}

// Delete removes name. A file that is already gone is not an error.
func (t *Tree) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := t.fs.Remove(t.path(name)); err != nil && !t.fs.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

// Materialize makes the tree match target: every file of target is written
// and every file tracked by current but absent from target is deleted.
// Untracked files are never checked here; callers run UntrackedCollisions
// first.
func Materialize(t *Tree, blobs BlobReader, target, current *object.Commit) error {
	for _, name := range util.SortedKeys(target.CloneFiles()) {
		data, err := blobs.GetBlob(target.Files[name])
		if err != nil {
			return fmt.Errorf("failed to load %q from commit %s: %w", name, target.ID, err)
		}
		if err := t.Write(name, data); err != nil {
			return err
		}
	}
	for _, name := range util.SortedKeys(current.CloneFiles()) {
		if target.Tracks(name) {
			continue
		}
		if err := t.Delete(name); err != nil {
			return err
		}
	}
	t.log.Debug().Str("commit", target.ID).Int("files", len(target.Files)).Msg("working tree materialized")
	return nil
}

// UntrackedCollisions lists working files that current does not track but
// that would be overwritten by incoming (filename to blob ID) with different
// content.
func UntrackedCollisions(t *Tree, h BlobHasher, current *object.Commit, incoming map[string]string) ([]string, error) {
	var hits []string
	for _, name := range util.SortedKeys(incoming) {
		if current.Tracks(name) || !t.Exists(name) {
			continue
		}
		data, err := t.Read(name)
		if err != nil {
			return nil, err
		}
		if h.HashBlob(data) != incoming[name] {
			hits = append(hits, name)
		}
	}
	if len(hits) > 0 {
		t.log.Debug().Strs("files", hits).Msg("untracked files in the way")
	}
	return hits, nil
}
