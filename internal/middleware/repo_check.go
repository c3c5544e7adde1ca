package middleware

import (
	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/config"
	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/repo"
)

// WithRepoCheck is a middleware that locates the enclosing repository and
// opens it into ctx.Repo before the command runs
func WithRepoCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				root, ok := config.ResolveWorkingTreeRoot(ctx.Env.FS, ctx.Env.WorkDir)
				if !ok {
					return errors.New(errors.ErrNotInitialized, "Not in an initialized Gitlet directory.")
				}
				r, err := repo.Open(ctx.Env.FS, root, repo.Options{Now: ctx.Env.Now})
				if err != nil {
					return err
				}
				ctx.Repo = r
				return cmd.Run(ctx)
			},
		}
	}
}
