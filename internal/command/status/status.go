package status

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
	"github.com/keshon/gitlet/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "status" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status" }
func (c *Command) Brief() string     { return "Show branches, staged files and working tree changes" }
func (c *Command) Help() string {
	return `Show the branches (the current one marked with *), the files staged for
addition or removal, tracked files changed but not staged, and untracked
files.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(0); err != nil {
		return err
	}
	rep, err := ctx.Repo.Status()
	if err != nil {
		return err
	}
	Write(ctx.Out(), rep)
	return nil
}

// Write prints a status report in its five sections.
func Write(w io.Writer, rep *repo.StatusReport) {
	fmt.Fprintln(w, "=== Branches ===")
	for _, b := range rep.Branches {
		if b == rep.CurrentBranch {
			fmt.Fprint(w, "*")
		}
		fmt.Fprintln(w, b)
	}
	fmt.Fprintln(w)

	section(w, "Staged Files", rep.Staged)
	section(w, "Removed Files", rep.Removed)

	changes := make([]string, 0, len(rep.Unstaged))
	for _, ch := range rep.Unstaged {
		changes = append(changes, fmt.Sprintf("%s (%s)", ch.Name, ch.Kind))
	}
	section(w, "Modifications Not Staged For Commit", changes)
	section(w, "Untracked Files", rep.Untracked)
}

func section(w io.Writer, title string, lines []string) {
	fmt.Fprintf(w, "=== %s ===\n", title)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	fmt.Fprintln(w)
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
