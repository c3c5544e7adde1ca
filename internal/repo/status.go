package repo

import (
	"slices"
	"strings"
)

// ChangeKind describes an unstaged modification.
type ChangeKind string

const (
	Modified ChangeKind = "modified"
	Deleted  ChangeKind = "deleted"
)

// Change is a working-tree difference that is not staged.
type Change struct {
	Name string
	Kind ChangeKind
}

// StatusReport is the state shown by status. Every list is sorted.
type StatusReport struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Unstaged      []Change
	Untracked     []string
}

// Status compares the working tree, the index and the current commit.
func (r *Repository) Status() (*StatusReport, error) {
	current, head, err := r.head()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}
	branches, err := r.Meta.ListBranches()
	if err != nil {
		return nil, err
	}
	files, err := r.Tree.Files()
	if err != nil {
		return nil, err
	}

	rep := &StatusReport{
		CurrentBranch: current,
		Staged:        idx.StagedNames(),
		Removed:       idx.RemovedNames(),
	}
	for _, b := range branches {
		rep.Branches = append(rep.Branches, b.Name)
	}

	// blob the working copy is expected to match, per file
	expected := head.CloneFiles()
	for _, name := range idx.RemovedNames() {
		delete(expected, name)
	}
	for name, blobID := range idx.Additions() {
		expected[name] = blobID
	}

	for name, blobID := range expected {
		if !r.Tree.Exists(name) {
			rep.Unstaged = append(rep.Unstaged, Change{Name: name, Kind: Deleted})
			continue
		}
		data, err := r.Tree.Read(name)
		if err != nil {
			return nil, err
		}
		if r.Objects.HashBlob(data) != blobID {
			rep.Unstaged = append(rep.Unstaged, Change{Name: name, Kind: Modified})
		}
	}
	slices.SortFunc(rep.Unstaged, func(a, b Change) int { return strings.Compare(a.Name, b.Name) })

	for _, name := range files {
		if _, ok := expected[name]; !ok {
			rep.Untracked = append(rep.Untracked, name)
		}
	}
	return rep, nil
}
