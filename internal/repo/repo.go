// Package repo is the repository session: one method per Gitlet verb, all
// working over a single injected filesystem.
package repo

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keshon/gitlet/internal/config"
	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/logging"
	"github.com/keshon/gitlet/internal/repo/graph"
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/meta"
	"github.com/keshon/gitlet/internal/repo/object"
	"github.com/keshon/gitlet/internal/repo/worktree"
)

const InitialCommitMessage = "initial commit"

// Options tune a session. Zero values mean: hash from settings or
// environment, and the wall clock.
type Options struct {
	Hash string
	Now  func() time.Time
}

// Repository represents an initialized repository.
type Repository struct {
	Config   *config.RepoConfig
	Settings config.Settings
	FS       fs.FS
	Meta     *meta.MetaContext
	Objects  *object.Store
	Tree     *worktree.Tree

	now func() time.Time
	log zerolog.Logger
}

// Init creates a repository in workTree with an epoch-dated root commit on
// the default branch.
func Init(fsys fs.FS, workTree string, opts Options) (*Repository, error) {
	cfg := config.NewRepoConfig(workTree)
	if meta.IsMetaExists(fsys, cfg) {
		return nil, errors.New(errors.ErrAlreadyExists,
			"A Gitlet version-control system already exists in the current directory.")
	}

	settings, err := config.DefaultSettings()
	if err != nil {
		return nil, err
	}
	if opts.Hash != "" {
		settings.Hash = opts.Hash
	}
	if err := meta.ValidateBranchName(settings.DefaultBranch); err != nil {
		return nil, err
	}

	r, err := newRepository(fsys, cfg, settings, opts)
	if err != nil {
		return nil, err
	}
	done := logging.LogOperationStart(r.log, "init")
	defer done()

	if err := r.Meta.CreateMetaStructure(); err != nil {
		return nil, err
	}
	if err := config.SaveSettings(fsys, cfg, settings); err != nil {
		return nil, err
	}

	root, err := graph.CreateCommit(r.Objects, InitialCommitMessage, "", "", index.New(), time.Unix(0, 0))
	if err != nil {
		return nil, err
	}
	if err := r.Meta.SetBranchCommitID(settings.DefaultBranch, root.ID); err != nil {
		return nil, err
	}
	if err := r.saveIndex(index.New()); err != nil {
		return nil, err
	}
	// HEAD last: its presence marks the repository as initialized
	if err := r.Meta.SetHead(settings.DefaultBranch); err != nil {
		return nil, err
	}

	r.log.Info().Str("hash", settings.Hash).Str("branch", settings.DefaultBranch).Msg("repository initialized")
	return r, nil
}

// Open loads the repository whose working tree is workTree. opts.Hash is
// ignored: the algorithm recorded at init always wins.
func Open(fsys fs.FS, workTree string, opts Options) (*Repository, error) {
	cfg := config.NewRepoConfig(workTree)
	if !meta.IsMetaExists(fsys, cfg) {
		return nil, errors.New(errors.ErrNotInitialized, "Not in an initialized Gitlet directory.")
	}
	settings, err := config.LoadSettings(fsys, cfg)
	if err != nil {
		return nil, err
	}
	return newRepository(fsys, cfg, settings, opts)
}

func newRepository(fsys fs.FS, cfg *config.RepoConfig, settings config.Settings, opts Options) (*Repository, error) {
	hasher, err := object.NewHasher(settings.Hash)
	if err != nil {
		return nil, err
	}
	mc, err := meta.NewMeta(cfg, fsys)
	if err != nil {
		return nil, err
	}
	tree, err := worktree.New(cfg.WorkingTreeDir, fsys)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Repository{
		Config:   cfg,
		Settings: settings,
		FS:       fsys,
		Meta:     mc,
		Objects:  object.NewStore(cfg.ObjectsDir(), fsys, hasher),
		Tree:     tree,
		now:      now,
		log:      logging.GetLogger("repo"),
	}, nil
}

func (r *Repository) loadIndex() (*index.Index, error) {
	return index.Load(r.FS, r.Config.IndexFile())
}

func (r *Repository) saveIndex(idx *index.Index) error {
	return idx.Save(r.FS, r.Config.IndexFile())
}

// head returns the current branch name and its commit.
func (r *Repository) head() (string, *object.Commit, error) {
	cur, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return "", nil, err
	}
	id, err := r.Meta.GetBranchCommitID(cur.Name)
	if err != nil {
		return "", nil, err
	}
	c, err := r.Objects.GetCommit(id)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	return cur.Name, c, nil
}

// CurrentBranch returns the name HEAD points at.
func (r *Repository) CurrentBranch() (string, error) {
	cur, err := r.Meta.GetCurrentBranch()
	if err != nil {
		return "", err
	}
	return cur.Name, nil
}

// HeadCommit returns the commit of the current branch.
func (r *Repository) HeadCommit() (*object.Commit, error) {
	_, c, err := r.head()
	return c, err
}

// switchTo materializes target over current after the untracked-file check.
func (r *Repository) switchTo(target, current *object.Commit) error {
	if err := r.checkUntracked(current, target.Files); err != nil {
		return err
	}
	return worktree.Materialize(r.Tree, r.Objects, target, current)
}

// checkUntracked fails when writing incoming would clobber a file current
// does not track.
func (r *Repository) checkUntracked(current *object.Commit, incoming map[string]string) error {
	hits, err := worktree.UntrackedCollisions(r.Tree, r.Objects, current, incoming)
	if err != nil {
		return err
	}
	if len(hits) > 0 {
		return errors.New(errors.ErrUntrackedFileConflict,
			"There is an untracked file in the way; delete it, or add and commit it first.").
			WithDetail("files", hits)
	}
	return nil
}
