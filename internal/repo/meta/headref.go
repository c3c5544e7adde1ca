package meta

import (
	"fmt"
	"strings"
)

// GetHead returns the name of the checked-out branch.
func (mc *MetaContext) GetHead() (string, error) {
	data, err := mc.FS.ReadFile(mc.Config.HeadFile())
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD %q: %w", mc.Config.HeadFile(), err)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("invalid HEAD content: %q", string(data))
	}
	return name, nil
}

// SetHead points HEAD at branch. The branch is not required to exist yet.
func (mc *MetaContext) SetHead(branch string) error {
	if err := ValidateBranchName(branch); err != nil {
		return err
	}
	if err := mc.FS.WriteFile(mc.Config.HeadFile(), []byte(branch), 0o644); err != nil {
		return fmt.Errorf("failed to write HEAD %q: %w", mc.Config.HeadFile(), err)
	}
	mc.log.Debug().Str("branch", branch).Msg("HEAD moved")
	return nil
}

// HeadCommitID returns the commit the current branch points at.
func (mc *MetaContext) HeadCommitID() (string, error) {
	cur, err := mc.GetCurrentBranch()
	if err != nil {
		return "", err
	}
	return mc.GetBranchCommitID(cur.Name)
}
