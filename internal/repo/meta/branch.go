package meta

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keshon/gitlet/internal/errors"
)

// Branch is a named pointer to a commit.
type Branch struct {
	Name     string
	CommitID string
}

// ValidateBranchName rejects names that cannot be stored as a single file
// under REFS.
func ValidateBranchName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return errors.Newf(errors.ErrInvalidInput, "Invalid branch name %q.", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrInvalidInput, "Invalid branch name %q: path separators are not allowed.", name)
	case strings.TrimSpace(name) != name:
		return errors.Newf(errors.ErrInvalidInput, "Invalid branch name %q: surrounding whitespace is not allowed.", name)
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			return errors.Newf(errors.ErrInvalidInput, "Invalid branch name %q: control characters are not allowed.", name)
		}
	}
	return nil
}

func (mc *MetaContext) refPath(name string) string {
	return filepath.Join(mc.Config.RefsDir(), name)
}

// GetCurrentBranch returns the branch HEAD names.
func (mc *MetaContext) GetCurrentBranch() (*Branch, error) {
	name, err := mc.GetHead()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}
	return &Branch{Name: name}, nil
}

// GetBranch returns the branch with its commit. A missing branch fails with
// NotFound.
func (mc *MetaContext) GetBranch(name string) (Branch, error) {
	id, err := mc.GetBranchCommitID(name)
	if err != nil {
		return Branch{}, err
	}
	return Branch{Name: name, CommitID: id}, nil
}

// ListBranches returns all branches sorted by name.
func (mc *MetaContext) ListBranches() ([]Branch, error) {
	dirEntries, err := mc.FS.ReadDir(mc.Config.RefsDir())
	if err != nil {
		return nil, fmt.Errorf("failed to read refs directory %q: %w", mc.Config.RefsDir(), err)
	}
	branches := make([]Branch, 0, len(dirEntries))
	for _, e := range dirEntries {
		if e.IsDir() || ValidateBranchName(e.Name()) != nil {
			continue
		}
		b, err := mc.GetBranch(e.Name())
		if err != nil {
			return nil, err
		}
		branches = append(branches, b)
	}
	return branches, nil
}

// CreateBranch creates a new branch pointing at commitID.
func (mc *MetaContext) CreateBranch(name, commitID string) (Branch, error) {
	if err := ValidateBranchName(name); err != nil {
		return Branch{}, err
	}
	exists, err := mc.BranchExists(name)
	if err != nil {
		return Branch{}, err
	}
	if exists {
		return Branch{}, errors.New(errors.ErrAlreadyExists, "A branch with that name already exists.").WithDetail("branch", name)
	}
	if err := mc.SetBranchCommitID(name, commitID); err != nil {
		return Branch{}, err
	}
	return Branch{Name: name, CommitID: commitID}, nil
}

// DeleteBranch removes the ref only. Commits stay in the object store.
func (mc *MetaContext) DeleteBranch(name string) error {
	exists, err := mc.BranchExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New(errors.ErrNotFound, "A branch with that name does not exist.").WithDetail("branch", name)
	}
	if err := mc.FS.Remove(mc.refPath(name)); err != nil {
		return fmt.Errorf("failed to delete branch %q: %w", name, err)
	}
	mc.log.Debug().Str("branch", name).Msg("branch deleted")
	return nil
}

// BranchExists checks for branch existence (fast).
func (mc *MetaContext) BranchExists(name string) (bool, error) {
	if ValidateBranchName(name) != nil {
		return false, nil
	}
	_, err := mc.FS.Stat(mc.refPath(name))
	if err == nil {
		return true, nil
	}
	if mc.FS.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat branch file: %w", err)
}

// GetBranchCommitID returns the commit branch points at.
func (mc *MetaContext) GetBranchCommitID(name string) (string, error) {
	if ValidateBranchName(name) != nil {
		return "", errors.New(errors.ErrNotFound, "No such branch exists.").WithDetail("branch", name)
	}
	data, err := mc.FS.ReadFile(mc.refPath(name))
	if err != nil {
		if mc.FS.IsNotExist(err) {
			return "", errors.Wrap(err, errors.ErrNotFound, "No such branch exists.").WithDetail("branch", name)
		}
		return "", fmt.Errorf("failed to read branch %q: %w", name, err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("branch %q points at no commit", name)
	}
	return id, nil
}

// SetBranchCommitID creates or moves branch to commitID.
func (mc *MetaContext) SetBranchCommitID(name, commitID string) error {
	if err := ValidateBranchName(name); err != nil {
		return err
	}
	if err := mc.FS.WriteFile(mc.refPath(name), []byte(commitID), 0o644); err != nil {
		return fmt.Errorf("failed to set commit for branch %q: %w", name, err)
	}
	mc.log.Debug().Str("branch", name).Str("commit", commitID).Msg("ref moved")
	return nil
}
