package graph_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/repo/graph"
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/object"
)

var epoch = time.Unix(0, 0).UTC()

func newStore(t testing.TB) *object.Store {
	t.Helper()
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("OBJECTS", 0o755))
	return object.NewStore("OBJECTS", m, object.MustHasher("sha1"))
}

// commitWith stores a commit with the given parents and a unique message.
func commitWith(t testing.TB, s *object.Store, msg string, parents ...string) string {
	t.Helper()
	c := &object.Commit{Message: msg, Timestamp: epoch, Files: map[string]string{}}
	if len(parents) > 0 {
		c.Parent = parents[0]
	}
	if len(parents) > 1 {
		c.MergeParent = parents[1]
	}
	id, err := s.PutCommit(c)
	require.NoError(t, err)
	return id
}

func TestCreateCommitAppliesIndex(t *testing.T) {
	s := newStore(t)

	root, err := graph.CreateCommit(s, "initial commit", "", "", index.New(), epoch)
	require.NoError(t, err)
	assert.Empty(t, root.Files)
	assert.Equal(t, epoch, root.Timestamp)

	idx := index.New()
	idx.Stage("a.txt", "blob-a")
	idx.Stage("b.txt", "blob-b")
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.FixedZone("x", 3600))
	c1, err := graph.CreateCommit(s, "add a and b", root.ID, "", idx, now)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "blob-a", "b.txt": "blob-b"}, c1.Files)
	assert.Equal(t, root.ID, c1.Parent)
	assert.Equal(t, time.UTC, c1.Timestamp.Location())

	idx.Clear()
	idx.Stage("a.txt", "blob-a2")
	idx.StageRemoval("b.txt")
	c2, err := graph.CreateCommit(s, "edit a, drop b", c1.ID, "", idx, now.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "blob-a2"}, c2.Files)

	// the parent snapshot is untouched
	stored, err := s.GetCommit(c1.ID)
	require.NoError(t, err)
	assert.Equal(t, c1.Files, stored.Files)

	got, err := s.GetCommit(c2.ID)
	require.NoError(t, err)
	assert.Equal(t, c2, got)
}

func TestCreateCommitNeedsChanges(t *testing.T) {
	s := newStore(t)
	root, err := graph.CreateCommit(s, "initial commit", "", "", index.New(), epoch)
	require.NoError(t, err)

	_, err = graph.CreateCommit(s, "nothing", root.ID, "", index.New(), time.Now())
	assert.True(t, errors.IsErrorCode(err, errors.ErrNothingToCommit))
	msg, _ := errors.UserMessage(err)
	assert.Equal(t, "No changes added to the commit.", msg)
}

func TestWalkDiamond(t *testing.T) {
	s := newStore(t)
	//      a
	//     / \
	//    b   c
	//     \ / \
	//      d   e
	//       \ /
	//        f
	a := commitWith(t, s, "a")
	b := commitWith(t, s, "b", a)
	c := commitWith(t, s, "c", a)
	d := commitWith(t, s, "d", b, c)
	e := commitWith(t, s, "e", c)
	f := commitWith(t, s, "f", d, e)

	h, err := graph.Walk(s, f)
	require.NoError(t, err)
	assert.Equal(t, 6, h.Len())
	assert.Equal(t, f, h.IDs()[0])
	assert.ElementsMatch(t, []string{a, b, c, d, e, f}, h.IDs())

	// breadth-first: d and e before b and c, a last
	assert.Equal(t, []string{f, d, e, b, c, a}, h.IDs())

	hb, err := graph.Walk(s, b)
	require.NoError(t, err)
	assert.True(t, hb.Contains(a))
	assert.False(t, hb.Contains(c))
}

func TestFindSplit(t *testing.T) {
	s := newStore(t)
	root := commitWith(t, s, "root")
	a := commitWith(t, s, "A", root)
	b := commitWith(t, s, "B", a)
	c := commitWith(t, s, "C", a)
	b2 := commitWith(t, s, "B2", b)

	hb, err := graph.Walk(s, b2)
	require.NoError(t, err)
	hc, err := graph.Walk(s, c)
	require.NoError(t, err)

	split, err := graph.FindSplit(hb, hc)
	require.NoError(t, err)
	assert.Equal(t, a, split)

	split, err = graph.FindSplit(hc, hb)
	require.NoError(t, err)
	assert.Equal(t, a, split)

	// an ancestor is its own split point
	ha, err := graph.Walk(s, a)
	require.NoError(t, err)
	split, err = graph.FindSplit(hb, ha)
	require.NoError(t, err)
	assert.Equal(t, a, split)
}

func TestFindSplitAfterCrissCrossMerge(t *testing.T) {
	s := newStore(t)
	root := commitWith(t, s, "root")
	m1 := commitWith(t, s, "master 1", root)
	t1 := commitWith(t, s, "topic 1", root)
	// topic merged into master, then master work continues
	m2 := commitWith(t, s, "merge topic", m1, t1)
	m3 := commitWith(t, s, "master 3", m2)
	t2 := commitWith(t, s, "topic 2", t1)

	hm, err := graph.Walk(s, m3)
	require.NoError(t, err)
	ht, err := graph.Walk(s, t2)
	require.NoError(t, err)

	split, err := graph.FindSplit(hm, ht)
	require.NoError(t, err)
	assert.Equal(t, t1, split)
}

func TestFindSplitNoCommonAncestor(t *testing.T) {
	s := newStore(t)
	x := commitWith(t, s, "x")
	y := commitWith(t, s, "y")

	hx, err := graph.Walk(s, x)
	require.NoError(t, err)
	hy, err := graph.Walk(s, y)
	require.NoError(t, err)

	_, err = graph.FindSplit(hx, hy)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoCommonAncestor))
}

func TestWalkMissingCommit(t *testing.T) {
	s := newStore(t)
	orphan := commitWith(t, s, "orphan", "0000000000000000000000000000000000000000")

	_, err := graph.Walk(s, orphan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestFirstParentChain(t *testing.T) {
	s := newStore(t)
	root := commitWith(t, s, "root")
	side := commitWith(t, s, "side", root)
	main := commitWith(t, s, "main", root)
	merge := commitWith(t, s, "merge", main, side)

	chain, err := graph.FirstParentChain(s, merge)
	require.NoError(t, err)

	var msgs []string
	for _, c := range chain {
		msgs = append(msgs, c.Message)
	}
	assert.Equal(t, []string{"merge", "main", "root"}, msgs)
}

// Every random DAG walk terminates, starts at the start commit, lists each
// commit once and is closed under parents.
func TestWalkProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := newStore(t)
		n := rapid.IntRange(1, 25).Draw(rt, "n")
		ids := []string{commitWith(t, s, "c0")}
		for i := 1; i < n; i++ {
			p1 := ids[rapid.IntRange(0, len(ids)-1).Draw(rt, fmt.Sprintf("p1_%d", i))]
			parents := []string{p1}
			if rapid.Bool().Draw(rt, fmt.Sprintf("merge_%d", i)) {
				parents = append(parents, ids[rapid.IntRange(0, len(ids)-1).Draw(rt, fmt.Sprintf("p2_%d", i))])
			}
			ids = append(ids, commitWith(t, s, fmt.Sprintf("c%d", i), parents...))
		}

		start := ids[rapid.IntRange(0, len(ids)-1).Draw(rt, "start")]
		h, err := graph.Walk(s, start)
		require.NoError(rt, err)

		assert.Equal(rt, start, h.IDs()[0])
		seen := map[string]bool{}
		for _, id := range h.IDs() {
			assert.False(rt, seen[id], "duplicate %s", id)
			seen[id] = true

			c, err := s.GetCommit(id)
			require.NoError(rt, err)
			for _, p := range c.Parents() {
				assert.True(rt, h.Contains(p), "parent %s of %s missing", p, id)
			}
		}
		assert.True(rt, h.Contains(ids[0]), "root reachable from every commit")
	})
}

func TestCreateMergeCommitMayBeEmpty(t *testing.T) {
	s := newStore(t)
	root := commitWith(t, s, "root")
	side := commitWith(t, s, "side", root)

	c, err := graph.CreateCommit(s, "Merged side into master.", root, side, index.New(), epoch.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{root, side}, c.Parents())
	assert.True(t, c.IsMerge())
}
