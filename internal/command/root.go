package command

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keshon/gitlet/internal/errors"
	"github.com/keshon/gitlet/internal/logging"
)

// NewRootCmd builds the gitlet command line from the registered commands.
func NewRootCmd(env *Env) *cobra.Command {
	var verbosity int

	root := &cobra.Command{
		Use:   "gitlet",
		Short: "A small version-control system",
		Long: `gitlet keeps snapshots of the files in a flat working directory,
with branches, checkout, reset and three-way merge.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerTo(env.Err, verbosity)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New(errors.ErrInvalidInput, "Please enter a command.")
			}
			return errors.New(errors.ErrNotFound, "No command with that name exists.").WithDetail("command", args[0])
		},
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(env.Out)
	root.SetErr(env.Err)

	for _, c := range AllCommands() {
		root.AddCommand(newCobraCommand(c, env))
	}
	return root
}

func newCobraCommand(c Command, env *Env) *cobra.Command {
	cc := &cobra.Command{
		Use:     c.Usage(),
		Aliases: c.Aliases(),
		Short:   c.Brief(),
		Long:    c.Help(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(&Context{
				Args:   args,
				DashAt: cmd.ArgsLenAtDash(),
				Flags:  cmd.Flags(),
				Env:    env,
			})
		},
	}
	c.Flags(cc.Flags())
	return cc
}

// Execute runs one command line and returns the process exit code.
// Coded errors are expected outcomes: their message is printed and the exit
// code stays 0.
func Execute(env *Env, args []string) int {
	root := NewRootCmd(env)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if msg, ok := errors.UserMessage(err); ok {
			fmt.Fprintln(env.Out, msg)
			return 0
		}
		fmt.Fprintln(env.Err, "Error:", err)
		return 1
	}
	return 0
}
