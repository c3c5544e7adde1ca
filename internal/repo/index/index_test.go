package index_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/repo/index"
	"github.com/keshon/gitlet/internal/repo/object"
)

type fakeBlobs map[string][]byte

func (b fakeBlobs) GetBlob(id string) ([]byte, error) {
	data, ok := b[id]
	if !ok {
		return nil, errors.New(errors.ErrNotFound, "missing")
	}
	return data, nil
}

func head(files map[string]string) *object.Commit {
	return &object.Commit{ID: "c1", Message: "head", Files: files}
}

func TestStageReplacesAndCancelsRemoval(t *testing.T) {
	idx := index.New()
	idx.StageRemoval("a.txt")
	require.True(t, idx.IsRemoved("a.txt"))

	idx.Stage("a.txt", "b1")
	idx.Stage("a.txt", "b2")

	id, ok := idx.StagedBlob("a.txt")
	assert.True(t, ok)
	assert.Equal(t, "b2", id)
	assert.False(t, idx.IsRemoved("a.txt"))
}

func TestUnstageIfUnchanged(t *testing.T) {
	idx := index.New()
	c := head(map[string]string{"a.txt": "b1"})

	idx.Stage("a.txt", "b2")
	assert.False(t, idx.UnstageIfUnchanged("a.txt", "b2", c))
	assert.True(t, idx.IsStaged("a.txt"))

	// re-adding the committed content clears both pending states
	assert.True(t, idx.UnstageIfUnchanged("a.txt", "b1", c))
	assert.False(t, idx.IsStaged("a.txt"))

	idx.StageRemoval("a.txt")
	assert.True(t, idx.UnstageIfUnchanged("a.txt", "b1", c))
	assert.False(t, idx.IsRemoved("a.txt"))
	assert.True(t, idx.IsEmpty())

	assert.False(t, idx.UnstageIfUnchanged("new.txt", "b1", c))
	assert.False(t, idx.UnstageIfUnchanged("a.txt", "b1", nil))
}

func TestRemove(t *testing.T) {
	c := head(map[string]string{"tracked.txt": "b1"})

	t.Run("staged file is unstaged", func(t *testing.T) {
		idx := index.New()
		idx.Stage("new.txt", "b9")
		action, err := idx.Remove("new.txt", c)
		require.NoError(t, err)
		assert.Equal(t, index.Unstaged, action)
		assert.True(t, idx.IsEmpty())
	})

	t.Run("staged and tracked file is only unstaged", func(t *testing.T) {
		idx := index.New()
		idx.Stage("tracked.txt", "b2")
		action, err := idx.Remove("tracked.txt", c)
		require.NoError(t, err)
		assert.Equal(t, index.Unstaged, action)
		assert.False(t, idx.IsRemoved("tracked.txt"))
	})

	t.Run("tracked file is staged for removal", func(t *testing.T) {
		idx := index.New()
		action, err := idx.Remove("tracked.txt", c)
		require.NoError(t, err)
		assert.Equal(t, index.StagedForRemoval, action)
		assert.True(t, idx.IsRemoved("tracked.txt"))
		assert.Equal(t, []string{"tracked.txt"}, idx.RemovedNames())
	})

	t.Run("unknown file", func(t *testing.T) {
		idx := index.New()
		_, err := idx.Remove("ghost.txt", c)
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNothingToRemove))
		msg, ok := errors.UserMessage(err)
		assert.True(t, ok)
		assert.Equal(t, "No reason to remove the file.", msg)
	})
}

func TestContentOf(t *testing.T) {
	idx := index.New()
	blobs := fakeBlobs{"b1": []byte("hello")}
	idx.Stage("a.txt", "b1")

	got, err := idx.ContentOf("a.txt", blobs)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	_, err = idx.ContentOf("b.txt", blobs)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestSaveAndLoad(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("repo", 0o755))

	empty, err := index.Load(m, "repo/INDEX")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	idx := index.New()
	idx.Stage("b.txt", "b2")
	idx.Stage("a.txt", "b1")
	idx.StageRemoval("z.txt")
	idx.StageRemoval("c.txt")
	require.NoError(t, idx.Save(m, "repo/INDEX"))

	loaded, err := index.Load(m, "repo/INDEX")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, loaded.StagedNames())
	assert.Equal(t, []string{"c.txt", "z.txt"}, loaded.RemovedNames())
	assert.Equal(t, map[string]string{"a.txt": "b1", "b.txt": "b2"}, loaded.Additions())

	loaded.Clear()
	require.NoError(t, loaded.Save(m, "repo/INDEX"))
	data, err := m.ReadFile("repo/INDEX")
	require.NoError(t, err)
	assert.JSONEq(t, `{"additions":{},"removals":[]}`, string(data))
}

func TestLoadRejectsBadIndex(t *testing.T) {
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll("repo", 0o755))

	require.NoError(t, m.WriteFile("repo/INDEX", []byte("{ bad json"), 0o644))
	_, err := index.Load(m, "repo/INDEX")
	assert.Error(t, err)

	require.NoError(t, m.WriteFile("repo/INDEX", []byte(`{"additions":{"a":"b1"},"removals":["a"]}`), 0o644))
	_, err = index.Load(m, "repo/INDEX")
	assert.Error(t, err)
}

// No sequence of operations may leave a file both added and removed.
func TestAdditionsAndRemovalsStayDisjoint(t *testing.T) {
	c := head(map[string]string{"a": "b1", "b": "b2"})
	names := []string{"a", "b", "c"}

	rapid.Check(t, func(rt *rapid.T) {
		idx := index.New()
		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			name := rapid.SampledFrom(names).Draw(rt, "name")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				idx.Stage(name, rapid.SampledFrom([]string{"b1", "b2", "b3"}).Draw(rt, "blob"))
			case 1:
				idx.StageRemoval(name)
			case 2:
				_, _ = idx.Remove(name, c)
			case 3:
				idx.UnstageIfUnchanged(name, rapid.SampledFrom([]string{"b1", "b2"}).Draw(rt, "blob"), c)
			case 4:
				idx.Clear()
			}
			for _, n := range names {
				if idx.IsStaged(n) && idx.IsRemoved(n) {
					rt.Fatalf("%q is both staged and removed", n)
				}
			}
		}
	})
}

func TestRemoveActionString(t *testing.T) {
	assert.Equal(t, "unstaged", index.Unstaged.String())
	assert.Equal(t, "staged-for-removal", index.StagedForRemoval.String())
	assert.Equal(t, "RemoveAction(9)", index.RemoveAction(9).String())
}
