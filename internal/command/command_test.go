package command_test

import (
	"bytes"
	"path"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/gitlet/internal/command"
	_ "github.com/keshon/gitlet/internal/command/all"
	gitletlog "github.com/keshon/gitlet/internal/command/log"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/repo"
)

const work = "work"

type cli struct {
	t   *testing.T
	fs  *fs.MemoryFS
	env *command.Env
	out *bytes.Buffer
	err *bytes.Buffer
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	m := fs.NewMemoryFS()
	require.NoError(t, m.MkdirAll(work, 0o755))
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	c := &cli{t: t, fs: m, out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	c.env = &command.Env{
		FS:      m,
		WorkDir: work,
		Out:     c.out,
		Err:     c.err,
		Now: func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		},
	}
	return c
}

// run executes one command line and returns its stdout.
func (c *cli) run(args ...string) string {
	c.t.Helper()
	c.out.Reset()
	c.err.Reset()
	code := command.Execute(c.env, args)
	require.Equal(c.t, 0, code, "gitlet %v: stderr %q", args, c.err.String())
	return c.out.String()
}

func (c *cli) write(name, content string) {
	c.t.Helper()
	require.NoError(c.t, c.fs.WriteFile(path.Join(work, name), []byte(content), 0o644))
}

func (c *cli) read(name string) string {
	c.t.Helper()
	data, err := c.fs.ReadFile(path.Join(work, name))
	require.NoError(c.t, err)
	return string(data)
}

func (c *cli) open() *repo.Repository {
	c.t.Helper()
	r, err := repo.Open(c.fs, work, repo.Options{})
	require.NoError(c.t, err)
	return r
}

func TestCommandsAreRegistered(t *testing.T) {
	for _, name := range []string{
		"init", "add", "rm", "commit", "log", "global-log", "find", "status",
		"checkout", "branch", "rm-branch", "reset", "merge", "verify",
	} {
		_, ok := command.GetCommand(name)
		assert.True(t, ok, name)
	}
	_, ok := command.GetCommand("st")
	assert.True(t, ok, "alias")
}

func TestMissingOrUnknownCommand(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, "Please enter a command.\n", c.run())
	assert.Equal(t, "No command with that name exists.\n", c.run("push"))
}

func TestNotInitialized(t *testing.T) {
	c := newCLI(t)
	assert.Equal(t, "Not in an initialized Gitlet directory.\n", c.run("status"))
}

func TestInitTwice(t *testing.T) {
	c := newCLI(t)
	assert.Empty(t, c.run("init"))
	assert.Equal(t, "A Gitlet version-control system already exists in the current directory.\n", c.run("init"))
}

func TestInitObjectFormat(t *testing.T) {
	c := newCLI(t)
	c.run("init", "--object-format=sha256")
	head, err := c.open().HeadCommit()
	require.NoError(t, err)
	assert.Len(t, head.ID, 64)
}

func TestIncorrectOperands(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	for _, args := range [][]string{
		{"add"},
		{"add", "a", "b"},
		{"status", "x"},
		{"checkout"},
		{"checkout", "a", "b"},
		{"checkout", "a", "b", "--", "c"},
		{"checkout", "--", "a", "b"},
		{"branch", "--", "x"},
		{"merge"},
	} {
		assert.Equal(t, "Incorrect operands.\n", c.run(args...), "%v", args)
	}
}

func TestStatusLayout(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("wug.txt", "wug")
	c.write("gone.txt", "bye")
	c.write("junk.txt", "junk")
	c.run("add", "gone.txt")
	c.run("add", "junk.txt")
	c.run("commit", "two files")
	c.run("branch", "other")

	c.run("add", "wug.txt")
	c.run("rm", "gone.txt")
	require.NoError(t, c.fs.Remove(path.Join(work, "junk.txt")))
	c.write("random.stuff", "?")
	c.write("wug.txt", "changed")

	want := `=== Branches ===
*master
other

=== Staged Files ===
wug.txt

=== Removed Files ===
gone.txt

=== Modifications Not Staged For Commit ===
junk.txt (deleted)
wug.txt (modified)

=== Untracked Files ===
random.stuff

`
	assert.Equal(t, want, c.run("status"))
}

func TestCommitAndLog(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	assert.Equal(t, "Please enter a commit message.\n", c.run("commit"))
	assert.Equal(t, "No changes added to the commit.\n", c.run("commit", "empty"))

	c.write("a.txt", "a")
	c.run("add", "a.txt")
	assert.Empty(t, c.run("commit", "add a"))

	entries, err := c.open().Log()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var want strings.Builder
	for _, e := range entries {
		want.WriteString("===\ncommit " + e.ID + "\n")
		want.WriteString("Date: " + e.Timestamp.Local().Format(gitletlog.DateLayout) + "\n")
		want.WriteString(e.Message + "\n\n")
	}
	assert.Equal(t, want.String(), c.run("log"))
	assert.Equal(t, entries[0].ID[:7]+" add a\n"+entries[1].ID[:7]+" initial commit\n", c.run("log", "--oneline"))

	assert.Equal(t, entries[1].ID+"\n", c.run("find", "initial commit"))
	assert.Equal(t, "Found no commit with that message.\n", c.run("find", "nope"))
}

func TestCheckoutForms(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("f.txt", "v1")
	c.run("add", "f.txt")
	c.run("commit", "v1")
	first, err := c.open().HeadCommit()
	require.NoError(t, err)

	c.write("f.txt", "v2")
	c.run("add", "f.txt")
	c.run("commit", "v2")

	c.write("f.txt", "scratch")
	assert.Empty(t, c.run("checkout", "--", "f.txt"))
	assert.Equal(t, "v2", c.read("f.txt"))

	assert.Empty(t, c.run("checkout", first.ID[:8], "--", "f.txt"))
	assert.Equal(t, "v1", c.read("f.txt"))

	assert.Equal(t, "File does not exist in that commit.\n", c.run("checkout", first.ID, "--", "nope.txt"))
	assert.Equal(t, "No commit with that id exists.\n", c.run("checkout", "0000000", "--", "f.txt"))
	assert.Equal(t, "No such branch exists.\n", c.run("checkout", "dev"))
	assert.Equal(t, "No need to checkout the current branch.\n", c.run("checkout", "master"))
}

func TestMergeConflictOutput(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("f.txt", "1\n")
	c.run("add", "f.txt")
	c.run("commit", "base")
	c.run("branch", "other")

	c.write("f.txt", "2\n")
	c.run("add", "f.txt")
	c.run("commit", "ours")

	c.run("checkout", "other")
	c.write("f.txt", "3\n")
	c.run("add", "f.txt")
	c.run("commit", "theirs")
	c.run("checkout", "master")

	assert.Equal(t, "Encountered a merge conflict.\n", c.run("merge", "other"))
	assert.Equal(t, "<<<<<<< HEAD\n2\n=======\n3\n>>>>>>>\n", c.read("f.txt"))

	log := c.run("log")
	assert.Contains(t, log, "Merge: ")
	assert.Contains(t, log, "Merged other into master.")

	assert.Equal(t, "Given branch is an ancestor of the current branch.\n", c.run("merge", "other"))
	assert.Equal(t, "Cannot merge a branch with itself.\n", c.run("merge", "master"))
	assert.Equal(t, "Cannot remove the current branch.\n", c.run("rm-branch", "master"))
	assert.Empty(t, c.run("rm-branch", "other"))
	assert.Equal(t, "A branch with that name does not exist.\n", c.run("merge", "other"))
}

func TestMergeFastForwardOutput(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.run("branch", "ahead")
	c.run("checkout", "ahead")
	c.write("n.txt", "new")
	c.run("add", "n.txt")
	c.run("commit", "ahead")
	c.run("checkout", "master")

	assert.Equal(t, "Current branch fast-forwarded.\n", c.run("merge", "ahead"))
	assert.Equal(t, "new", c.read("n.txt"))
}

func TestVerifyCommand(t *testing.T) {
	c := newCLI(t)
	c.run("init")
	c.write("a.txt", "hello")
	c.run("add", "a.txt")
	c.run("commit", "add a")
	assert.Equal(t, "Objects checked: 3   Problems: 0\n", c.run("verify"))

	head, err := c.open().HeadCommit()
	require.NoError(t, err)
	blobID := head.Files["a.txt"]
	require.NoError(t, c.fs.Remove(path.Join(work, ".gitlet/OBJECTS", blobID)))

	c.out.Reset()
	c.err.Reset()
	assert.Equal(t, 1, command.Execute(c.env, []string{"verify"}))
	assert.Contains(t, c.out.String(), "missing "+blobID+"\n")
	assert.Contains(t, c.out.String(), "referenced by: commit "+head.ID+" file a.txt")
	assert.Contains(t, c.err.String(), "repository verification failed")
}

func TestRenderReadme(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, command.RenderReadme(&out, "# gitlet\n\n{{.CommandSections}}"))
	assert.Contains(t, out.String(), "### merge\n```\ngitlet merge <branch>\n")
	assert.Contains(t, out.String(), "### checkout")
	assert.True(t, strings.HasPrefix(out.String(), "# gitlet\n\n### add"))
}
