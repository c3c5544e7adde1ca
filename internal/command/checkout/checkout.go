package checkout

import (
	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string     { return "checkout (-- <file> | <commit> -- <file> | <branch>)" }
func (c *Command) Brief() string     { return "Restore a file, or switch to a branch" }
func (c *Command) Help() string {
	return `Restore files or switch branches.

Forms:
  checkout -- <file>            Restore <file> as it is in the head commit.
  checkout <commit> -- <file>   Restore <file> as it is in <commit>. The
                                commit may be an unambiguous ID prefix.
  checkout <branch>             Replace the tracked files with those of the
                                branch head and make it the current branch.

File checkouts do not touch the staging area. A branch checkout clears it,
and refuses to run if it would overwrite an untracked file.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	switch {
	case ctx.DashAt == 0 && len(ctx.Args) == 1:
		return ctx.Repo.CheckoutFile(ctx.Args[0])
	case ctx.DashAt == 1 && len(ctx.Args) == 2:
		return ctx.Repo.CheckoutCommitFile(ctx.Args[0], ctx.Args[1])
	case ctx.DashAt < 0 && len(ctx.Args) == 1:
		return ctx.Repo.CheckoutBranch(ctx.Args[0])
	}
	return command.IncorrectOperands()
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
