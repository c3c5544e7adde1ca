package config

import (
	"path/filepath"

	"github.com/keshon/gitlet/internal/fs"
)

const (
	RepoDir      = ".gitlet"
	ObjectsDir   = "OBJECTS"
	RefsDir      = "REFS"
	HeadFile     = "HEAD"
	IndexFile    = "INDEX"
	SettingsFile = "config.json"

	IgnoreFile = ".gitletignore"
)

const (
	DefaultBranch = "master"
	DefaultHash   = "sha1" // "sha1" | "sha256" | "blake3" | "xxh3"
)

// RepoConfig holds the locations of one repository: the working tree and the
// repository directory inside it.
type RepoConfig struct {
	WorkingTreeDir string
	RepoRoot       string
}

// NewRepoConfig returns the layout for a repository whose working tree is workTree.
func NewRepoConfig(workTree string) *RepoConfig {
	if workTree == "" {
		workTree = "."
	}
	return &RepoConfig{
		WorkingTreeDir: workTree,
		RepoRoot:       filepath.Join(workTree, RepoDir),
	}
}

func (c *RepoConfig) ObjectsDir() string   { return filepath.Join(c.RepoRoot, ObjectsDir) }
func (c *RepoConfig) RefsDir() string      { return filepath.Join(c.RepoRoot, RefsDir) }
func (c *RepoConfig) HeadFile() string     { return filepath.Join(c.RepoRoot, HeadFile) }
func (c *RepoConfig) IndexFile() string    { return filepath.Join(c.RepoRoot, IndexFile) }
func (c *RepoConfig) SettingsFile() string { return filepath.Join(c.RepoRoot, SettingsFile) }
func (c *RepoConfig) IgnoreFile() string   { return filepath.Join(c.WorkingTreeDir, IgnoreFile) }

// ResolveWorkingTreeRoot determines the working tree root by walking up from start.
// It stops at the first directory containing a .gitlet directory.
func ResolveWorkingTreeRoot(fsys fs.FS, start string) (string, bool) {
	cwd := filepath.Clean(start)
	for {
		if fsys.IsDir(filepath.Join(cwd, RepoDir)) {
			return cwd, true
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break // reached filesystem root
		}
		cwd = parent
	}
	return "", false
}
