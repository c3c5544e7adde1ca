package initcmd

import (
	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
	"github.com/keshon/gitlet/internal/repo"
)

type Command struct {
	objectFormat string
}

func (c *Command) Name() string      { return "init" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "init [--object-format=<algo>]" }
func (c *Command) Brief() string     { return "Create a new repository in the current directory" }
func (c *Command) Help() string {
	return `Create a new repository in the current directory.

The repository starts with one commit, "initial commit", on branch master.

Options:
      --object-format=<algo>  Hash algorithm: sha1, sha256, blake3 or xxh3
                              (default sha1, or $GITLET_HASH).

Examples:
  gitlet init
  gitlet init --object-format=blake3`
}

func (c *Command) Flags(fs *pflag.FlagSet) {
	fs.StringVar(&c.objectFormat, "object-format", "", "hash algorithm for object IDs")
}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(0); err != nil {
		return err
	}
	_, err := repo.Init(ctx.Env.FS, ctx.Env.WorkDir, repo.Options{
		Hash: c.objectFormat,
		Now:  ctx.Env.Now,
	})
	return err
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
