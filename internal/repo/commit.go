package repo

import (
	"slices"
	"strings"
	"time"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/repo/graph"
	"github.com/keshon/gitlet/internal/repo/object"
)

// LogEntry is one commit as shown by log and global-log.
type LogEntry struct {
	ID          string
	Message     string
	Timestamp   time.Time
	Parent      string
	MergeParent string
}

func (e LogEntry) IsMerge() bool { return e.MergeParent != "" }

func newLogEntry(c *object.Commit) LogEntry {
	return LogEntry{
		ID:          c.ID,
		Message:     c.Message,
		Timestamp:   c.Timestamp,
		Parent:      c.Parent,
		MergeParent: c.MergeParent,
	}
}

// Commit records the staged changes as a new commit on the current branch.
func (r *Repository) Commit(message string) (*object.Commit, error) {
	if message == "" {
		return nil, errors.New(errors.ErrInvalidInput, "Please enter a commit message.")
	}
	return r.commit(message, "")
}

func (r *Repository) commit(message, mergeParent string) (*object.Commit, error) {
	branch, head, err := r.head()
	if err != nil {
		return nil, err
	}
	idx, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	c, err := graph.CreateCommit(r.Objects, message, head.ID, mergeParent, idx, r.now())
	if err != nil {
		return nil, err
	}
	if err := r.Meta.SetBranchCommitID(branch, c.ID); err != nil {
		return nil, err
	}
	idx.Clear()
	if err := r.saveIndex(idx); err != nil {
		return nil, err
	}
	r.log.Info().Str("branch", branch).Str("commit", c.ID).Msg("committed")
	return c, nil
}

// Log lists the current branch's history along first parents, newest first.
func (r *Repository) Log() ([]LogEntry, error) {
	_, head, err := r.head()
	if err != nil {
		return nil, err
	}
	chain, err := graph.FirstParentChain(r.Objects, head.ID)
	if err != nil {
		return nil, err
	}
	entries := make([]LogEntry, 0, len(chain))
	for _, c := range chain {
		entries = append(entries, newLogEntry(c))
	}
	return entries, nil
}

// GlobalLog lists every commit ever made, newest first.
func (r *Repository) GlobalLog() ([]LogEntry, error) {
	return r.allCommits(func(*object.Commit) bool { return true })
}

// Find returns the IDs of all commits whose message is exactly message.
func (r *Repository) Find(message string) ([]string, error) {
	entries, err := r.allCommits(func(c *object.Commit) bool { return c.Message == message })
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New(errors.ErrNotFound, "Found no commit with that message.")
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (r *Repository) allCommits(keep func(*object.Commit) bool) ([]LogEntry, error) {
	ids, err := r.Objects.CommitIDs()
	if err != nil {
		return nil, err
	}
	var entries []LogEntry
	for _, id := range ids {
		c, err := r.Objects.GetCommit(id)
		if err != nil {
			return nil, err
		}
		if keep(c) {
			entries = append(entries, newLogEntry(c))
		}
	}
	slices.SortFunc(entries, func(a, b LogEntry) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return entries, nil
}
