package commit

import (
	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "commit" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "commit <message>" }
func (c *Command) Brief() string     { return "Record staged changes as a new commit" }
func (c *Command) Help() string {
	return `Save a snapshot of the current commit's files updated with the staged
changes, then clear the staging area.

Usage:
  gitlet commit <message>

Examples:
  gitlet commit "fix typo in notes"`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	message := ""
	if len(ctx.Args) > 0 {
		if err := ctx.RequireArgs(1); err != nil {
			return err
		}
		message = ctx.Args[0]
	}
	_, err := ctx.Repo.Commit(message)
	return err
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
