package find

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "find" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "find <message>" }
func (c *Command) Brief() string     { return "Print the IDs of commits with a given message" }
func (c *Command) Help() string {
	return `Print the ID of every commit whose message is exactly <message>, one
per line.

Usage:
  gitlet find "initial commit"`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(1); err != nil {
		return err
	}
	ids, err := ctx.Repo.Find(ctx.Args[0])
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(ctx.Out(), id)
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
