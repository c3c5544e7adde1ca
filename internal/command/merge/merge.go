package merge

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "merge <branch>" }
func (c *Command) Brief() string     { return "Merge a branch into the current branch" }
func (c *Command) Help() string {
	return `Merge the head of <branch> into the current branch using their latest
common ancestor as the base.

If the current branch is an ancestor of <branch> it is fast-forwarded.
Otherwise a merge commit with two parents is made. Files changed on both
sides in different ways are written with conflict markers:

  <<<<<<< HEAD
  (current branch)
  =======
  (given branch)
  >>>>>>>`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(1); err != nil {
		return err
	}
	res, err := ctx.Repo.Merge(ctx.Args[0])
	if err != nil {
		return err
	}
	if msg := res.Message(); msg != "" {
		fmt.Fprintln(ctx.Out(), msg)
	}
	return nil
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
