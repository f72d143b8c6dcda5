package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

//go:embed .version
var embeddedVersion string

// errTestsFailed is returned when the runner ran but reported failure; the
// summary has already been printed.
var errTestsFailed = errors.New("test run failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// options holds the flags shared by run and args
type options struct {
	configFile string
	verbose    bool
	logFormat  string
	noColor    bool
	newSession bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "vstestrun",
		Short: "Run .NET tests with vstest.console",
		Long: `Run .NET tests with vstest.console.

The run is described by a YAML configuration file. Keys mirror the
vstest.console switches: test_file, settings, framework, platform,
loggers, collectors, blame_*, runner_settings and so on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "vstest.yaml", "path to the run configuration")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides log.format)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable color output")
	flags.BoolVar(&opts.newSession, "new-session", false, "generate a session correlation id when none is configured")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newArgsCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vstestrun version %s\n", strings.TrimSpace(embeddedVersion))
		},
	}
}
