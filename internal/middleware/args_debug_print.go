package middleware

import (
	"github.com/keshon/gitlet/internal/command"
	"github.com/keshon/gitlet/internal/logging"
)

// WithDebugArgsPrint is a middleware that logs the command and its arguments
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				logging.LogCommand(cmd.Name(), ctx.Args)
				return cmd.Run(ctx)
			},
		}
	}
}
