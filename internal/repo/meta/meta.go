package meta

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/keshon/gitlet/internal/config"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/logging"
)

// MetaContext owns the mutable pointers of a repository: branch refs and HEAD.
type MetaContext struct {
	Config *config.RepoConfig
	FS     fs.FS
	log    zerolog.Logger
}

// NewMeta returns a MetaContext for cfg. Nothing is read or created.
func NewMeta(cfg *config.RepoConfig, fsys fs.FS) (*MetaContext, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil RepoConfig provided")
	}
	if fsys == nil {
		return nil, fmt.Errorf("nil FS provided")
	}
	return &MetaContext{Config: cfg, FS: fsys, log: logging.GetLogger("meta")}, nil
}

// CreateMetaStructure builds the repository directory layout. Branches and
// HEAD are written separately once the root commit exists.
func (mc *MetaContext) CreateMetaStructure() error {
	dirs := []string{
		mc.Config.RepoRoot,
		mc.Config.ObjectsDir(),
		mc.Config.RefsDir(),
	}
	for _, d := range dirs {
		if err := mc.FS.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %q: %w", d, err)
		}
	}
	return nil
}

// IsMetaExists reports whether cfg points at an initialized repository.
func IsMetaExists(fsys fs.FS, cfg *config.RepoConfig) bool {
	fi, err := fsys.Stat(cfg.HeadFile())
	return err == nil && fi.Mode().IsRegular()
}
