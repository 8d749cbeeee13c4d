// Package cli implements the cornerkicks command line client.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dlehdeod1/newcornerkicks/internal/dependencies/clock"
)

// Options wires the command tree to its environment. Zero values use the
// process streams, the system clock and os.LookupEnv.
type Options struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Clock     clock.Clock
	LookupEnv func(string) (string, bool)
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.LookupEnv == nil {
		o.LookupEnv = os.LookupEnv
	}
	return o
}

// NewRootCmd creates the root command
func NewRootCmd(opts Options) *cobra.Command {
	return newRootCmd(newRuntime(opts.withDefaults()))
}

func newRootCmd(rt *runtime) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cornerkicks",
		Short: "CLI for the cornerkicks futsal club",
		Long: `cornerkicks manages the club's weekly futsal sessions from the terminal.

It covers sign-in, session creation from a pasted attendance poll,
players, matches and teams, rankings, settlements and notifications.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.teardown()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetIn(rt.opts.Stdin)
	rootCmd.SetOut(rt.opts.Stdout)
	rootCmd.SetErr(rt.opts.Stderr)

	rt.flags.register(rootCmd)

	rootCmd.AddCommand(newAuthCmd(rt))
	rootCmd.AddCommand(newSessionsCmd(rt))
	rootCmd.AddCommand(newPlayersCmd(rt))
	rootCmd.AddCommand(newMatchesCmd(rt))
	rootCmd.AddCommand(newTeamsCmd(rt))
	rootCmd.AddCommand(newRankingsCmd(rt))
	rootCmd.AddCommand(newSettlementsCmd(rt))
	rootCmd.AddCommand(newNotificationsCmd(rt))
	rootCmd.AddCommand(newAdminCmd(rt))
	rootCmd.AddCommand(newHealthCmd(rt))

	return rootCmd
}

// Run executes the command tree with args and returns the process exit code
func Run(ctx context.Context, opts Options, args []string) int {
	rt := newRuntime(opts.withDefaults())
	cmd := newRootCmd(rt)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	// cobra skips post-run hooks when RunE fails
	if closeErr := rt.teardown(); err == nil {
		err = closeErr
	}
	if err != nil {
		rt.output().PrintError(err)
		return 1
	}
	return 0
}

// Execute runs the root command against the process environment
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, Options{}, os.Args[1:])
	stop()
	os.Exit(code)
}
