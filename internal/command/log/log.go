package log

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
	"github.com/keshon/gitlet/internal/repo"
)

// DateLayout is how commit timestamps are shown, in local time.
const DateLayout = "Mon Jan 2 15:04:05 2006 -0700"

type Command struct {
	oneline bool
}

func (c *Command) Name() string      { return "log" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "log [--oneline]" }
func (c *Command) Brief() string     { return "Show the history of the current branch" }
func (c *Command) Help() string {
	return `Show commits from the head commit back to the initial commit, following
first parents only.

Options:
      --oneline   Show each commit as a single line (short ID + message).

Examples:
  gitlet log
  gitlet log --oneline`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each commit on one line")
}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(0); err != nil {
		return err
	}
	entries, err := ctx.Repo.Log()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if c.oneline {
			WriteOneline(ctx.Out(), e)
		} else {
			WriteEntry(ctx.Out(), e)
		}
	}
	return nil
}

// WriteEntry prints one commit in the full log layout, followed by a blank line.
func WriteEntry(w io.Writer, e repo.LogEntry) {
	fmt.Fprintln(w, "===")
	fmt.Fprintf(w, "commit %s\n", e.ID)
	if e.IsMerge() {
		fmt.Fprintf(w, "Merge: %s %s\n", short(e.Parent), short(e.MergeParent))
	}
	fmt.Fprintf(w, "Date: %s\n", e.Timestamp.Local().Format(DateLayout))
	fmt.Fprintln(w, e.Message)
	fmt.Fprintln(w)
}

func WriteOneline(w io.Writer, e repo.LogEntry) {
	fmt.Fprintf(w, "%s %s\n", short(e.ID), e.Message)
}

func short(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
			middleware.WithRepoCheck(),
		),
	)
}
