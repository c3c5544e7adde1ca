package branch

import (
	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "branch <name>" }
func (c *Command) Brief() string     { return "Create a branch at the head commit" }
func (c *Command) Help() string {
	return `Create a new branch pointing at the head commit. The current branch does
not change.

Branch names may not contain path separators.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(1); err != nil {
		return err
	}
	return ctx.Repo.Branch(ctx.Args[0])
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
