package command

import (
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Flags(fs *pflag.FlagSet)
	Run(ctx *Context) error
}

// Env is what a command invocation runs against: the filesystem, the
// directory it was started from, where output goes and the clock.
type Env struct {
	FS      fs.FS
	WorkDir string
	Out     io.Writer
	Err     io.Writer
	Now     func() time.Time
}

// Context represents a cli context
type Context struct {
	Args []string
	// DashAt is the number of args before a "--" separator, or -1.
	DashAt int
	Flags  *pflag.FlagSet
	Env    *Env

	// Repo is set by the repository check middleware.
	Repo *repo.Repository
}

// Out is the writer command output goes to.
func (ctx *Context) Out() io.Writer { return ctx.Env.Out }

// RequireArgs fails with the operand error unless exactly n args were given
// and no "--" separator was used.
func (ctx *Context) RequireArgs(n int) error {
	if len(ctx.Args) != n || ctx.DashAt >= 0 {
		return IncorrectOperands()
	}
	return nil
}

func IncorrectOperands() error {
	return errors.New(errors.ErrInvalidInput, "Incorrect operands.")
}
