package globallog

import (
	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	gitletlog "github.com/keshon/gitlet/internal/command/log"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct {
	oneline bool
}

func (c *Command) Name() string      { return "global-log" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "global-log [--oneline]" }
func (c *Command) Brief() string     { return "Show every commit ever made" }
func (c *Command) Help() string {
	return `Show every commit in the repository, newest first, whichever branch it
belongs to.

Options:
      --oneline   Show each commit as a single line (short ID + message).`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each commit on one line")
}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(0); err != nil {
		return err
	}
	entries, err := ctx.Repo.GlobalLog()
	if err != nil {
		return err
	}
	for _, e := range entries {
		if c.oneline {
			gitletlog.WriteOneline(ctx.Out(), e)
		} else {
			gitletlog.WriteEntry(ctx.Out(), e)
		}
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
