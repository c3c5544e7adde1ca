package object

import (
	"bytes"
	"fmt"
	"maps"
	"time"

	"github.com/keshon/gitlet/internal/util"
)

// Commit is an immutable snapshot of every tracked file plus metadata.
// Files maps filename to blob ID and is complete, not a diff.
type Commit struct {
	ID          string            `json:"id"`
	Message     string            `json:"message"`
	Timestamp   time.Time         `json:"timestamp"`
	Parent      string            `json:"parent,omitempty"`
	MergeParent string            `json:"merge_parent,omitempty"`
	Files       map[string]string `json:"files"`
}

// Parents returns the parent IDs, first parent first.
func (c *Commit) Parents() []string {
	var ps []string
	if c.Parent != "" {
		ps = append(ps, c.Parent)
	}
	if c.MergeParent != "" {
		ps = append(ps, c.MergeParent)
	}
	return ps
}

func (c *Commit) IsMerge() bool { return c.MergeParent != "" }

// BlobFor returns the blob ID tracked for name. A nil commit tracks nothing.
func (c *Commit) BlobFor(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	id, ok := c.Files[name]
	return id, ok
}

// Tracks reports whether name is part of the snapshot.
func (c *Commit) Tracks(name string) bool {
	_, ok := c.BlobFor(name)
	return ok
}

// CloneFiles returns a copy of the file map, never nil.
func (c *Commit) CloneFiles() map[string]string {
	if c == nil || c.Files == nil {
		return map[string]string{}
	}
	return maps.Clone(c.Files)
}

// canonical is the byte form the commit ID is computed over.
func (c *Commit) canonical() []byte {
	var b bytes.Buffer
	b.WriteString("commit\n")
	fmt.Fprintf(&b, "parent %s\n", c.Parent)
	fmt.Fprintf(&b, "merge-parent %s\n", c.MergeParent)
	fmt.Fprintf(&b, "timestamp %d\n", c.Timestamp.UnixNano())
	for _, name := range util.SortedKeys(c.Files) {
		fmt.Fprintf(&b, "file %d:%s %s\n", len(name), name, c.Files[name])
	}
	b.WriteString("\n")
	b.WriteString(c.Message)
	return b.Bytes()
}
