// Package cli has the nmrstar commands. Each file holds one command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrew-torda/nmrstar/pkg/common"
	"github.com/andrew-torda/nmrstar/pkg/config"
	"github.com/andrew-torda/nmrstar/pkg/logger"
)

// usageError is a mistake on the command line, as opposed to a failure
// while doing the work.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// app is the state shared by all the commands of one invocation.
type app struct {
	cfgFile string
	verbose bool
	cfg     *config.Config
}

// needArgs is cobra.MinimumNArgs, but says it is a usage error.
func needArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < n {
			return usageError{fmt.Errorf("%s needs at least %d %s", cmd.Name(), n, what)}
		}
		return nil
	}
}

// newRootCmd builds the command tree. Output goes to out and logs and
// messages to errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "nmrstar",
		Short: "Read NMR-STAR files from the BMRB",
		Long: `nmrstar downloads entries from the BMRB and pulls out the sequences,
sample components and assigned chemical shifts as CSV. They can also be
kept in an sqlite database or plotted.

Settings come from .nmrstar.yaml in the current or home directory, or
--config, and can be overridden by NMRSTAR_* environment variables, for
example NMRSTAR_BMRB_BASE_URL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(errOut)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError{err} })
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./.nmrstar.yaml or $HOME/.nmrstar.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		a.fetchCmd(),
		sequencesCmd(),
		samplesCmd(),
		shiftsCmd(),
		a.storeCmd(),
		a.plotCmd(),
		dumpCmd(),
	)
	return root
}

// setup reads the configuration and sets up logging.
func (a *app) setup(errOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	logger.Set(logger.New(errOut, level))
	return nil
}

// Run runs the command line args and returns the exit code.
func Run(args []string, out, errOut io.Writer) int {
	root := newRootCmd(out, errOut)
	root.SetArgs(args)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return common.ExitSuccess
	}
	fmt.Fprintln(errOut, "nmrstar:", err)
	var uerr usageError
	if errors.As(err, &uerr) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(errOut, "Run 'nmrstar --help' for usage.")
		return common.ExitUsageError
	}
	return common.ExitFailure
}
