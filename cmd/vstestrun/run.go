package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/borud/broker"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/perbu/vstestrun/pkg/config"
	"github.com/perbu/vstestrun/pkg/escape"
	"github.com/perbu/vstestrun/pkg/events"
	"github.com/perbu/vstestrun/pkg/harness"
	"github.com/perbu/vstestrun/pkg/vstest"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [test-file]",
		Short: "Run the configured tests",
		Long: `Run vstest.console for the configured test file and relay its output.

The optional test-file argument overrides test_file from the configuration.
The command exits non-zero when vstest.console reports failure.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts, args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runTests(cmd.Context(), cfg, logger, opts, cmd.OutOrStdout())
		},
	}
}

func newArgsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "args [test-file]",
		Short: "Print the vstest.console command line without running it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(opts, args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			built := vstest.BuildArgs(&cfg.RunConfiguration, logger)
			line := escape.Escape(cfg.ResolveRunnerPath())
			if cl := built.CommandLine(); cl != "" {
				line += " " + cl
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}

// setup loads the configuration and applies the command line overrides
func setup(opts *options, args []string, logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if len(args) > 0 {
		cfg.TestFile = args[0]
	}
	if opts.newSession && cfg.SessionCorrelationID == "" {
		cfg.SessionCorrelationID = fmt.Sprintf("%d_%s", os.Getpid(), uuid.NewString())
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}
	if opts.verbose {
		cfg.Log.Level = "debug"
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newLogger builds the slog logger described by lc
func newLogger(lc config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	switch lc.Format {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", lc.Format)
}

// runTests runs the harness and prints the summary
func runTests(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts *options, out io.Writer) error {
	b := events.NewBroker()
	watchEvents(ctx, b, logger)

	h := harness.New(&harness.Config{
		Run:        &cfg.RunConfiguration,
		RunnerPath: cfg.RunnerPath,
		Verbose:    opts.verbose,
		Logger:     logger,
		Broker:     b,
	})

	result, err := h.Run(ctx)
	if err != nil {
		return err
	}

	harness.NewFormatter(harness.OutputOptions{
		Verbose: opts.verbose,
		Color:   harness.ShouldUseColor() && !opts.noColor,
	}, out).FormatResult(result)

	if !result.Passed {
		return errTestsFailed
	}
	return nil
}

// watchEvents logs lifecycle events at debug level until ctx is done
func watchEvents(ctx context.Context, b *broker.Broker, logger *slog.Logger) {
	sub, err := b.Subscribe(events.TopicProcess)
	if err != nil {
		logger.Debug("Event subscription failed", "error", err)
		return
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Messages():
				if !ok {
					return
				}
				logger.Debug("Event", "type", fmt.Sprintf("%T", msg.Payload), "payload", msg.Payload)
			}
		}
	}()
}
