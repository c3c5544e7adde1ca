package command

// Middleware wraps a command's Run with extra behaviour.
type Middleware func(Command) Command

// WrappedCommand is a command whose Run is replaced by Wrap. Everything else
// is delegated to the embedded command.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

// Run executes the wrapped command
func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps cmd with each middleware in turn, so the last one
// listed runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
