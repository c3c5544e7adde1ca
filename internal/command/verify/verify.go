package verify

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Aliases() []string { return []string{"check"} }
func (c *Command) Usage() string     { return "verify" }
func (c *Command) Brief() string     { return "Check repository integrity" }
func (c *Command) Help() string {
	return `Re-hash every stored object and check that every commit and blob reachable
from a branch is present.

Each problem is printed as "<status> <id>" followed by what refers to it.`
}

func (c *Command) Flags(fs *pflag.FlagSet) {}

func (c *Command) Run(ctx *command.Context) error {
	if err := ctx.RequireArgs(0); err != nil {
		return err
	}
	rep, err := ctx.Repo.Verify()
	if err != nil {
		return err
	}

	out := ctx.Out()
	for _, p := range rep.Problems {
		line := fmt.Sprintf("%s %s", p.Status, p.ID)
		if p.Kind != "" {
			line += " (" + p.Kind + ")"
		}
		fmt.Fprintln(out, line)
		if len(p.ReferencedBy) > 0 {
			fmt.Fprintf(out, "  referenced by: %s\n", strings.Join(p.ReferencedBy, ", "))
		}
	}
	fmt.Fprintf(out, "Objects checked: %d   Problems: %d\n", rep.Objects, len(rep.Problems))

	if !rep.OK() {
		return fmt.Errorf("repository verification failed: %d problem(s)", len(rep.Problems))
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
