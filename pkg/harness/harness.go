// Package harness runs vstest.console for a RunConfiguration: it builds the
// arguments, starts the runner, relays its output and reports the outcome.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"code.cloudfoundry.org/clock"

	"github.com/perbu/vstestrun/pkg/events"
	"github.com/perbu/vstestrun/pkg/runner"
	"github.com/perbu/vstestrun/pkg/vstest"
)

// Harness orchestrates one runner invocation.
type Harness struct {
	cfg    *Config
	logger *slog.Logger
	clock  clock.Clock
	runner ProcessRunner
}

// New creates a new test harness with the given configuration.
func New(cfg *Config) *Harness {
	logger := cfg.Logger
	if logger == nil {
		logLevel := slog.LevelInfo
		if cfg.Verbose {
			logLevel = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.NewClock()
	}

	proc := cfg.Runner
	if proc == nil {
		proc = runner.New(logger)
	}

	return &Harness{
		cfg:    cfg,
		logger: logger,
		clock:  clk,
		runner: proc,
	}
}

// Execute is the host entry point: it runs the configured tests and returns
// true iff the runner exited with code 0. Failures are logged.
func Execute(ctx context.Context, run *vstest.RunConfiguration, logger *slog.Logger) bool {
	result, err := New(&Config{Run: run, Logger: logger}).Run(ctx)
	if err != nil {
		return false
	}
	return result.Passed
}

// RunnerPath returns the executable the harness starts.
func (h *Harness) RunnerPath() string {
	if h.cfg.RunnerPath != "" {
		return h.cfg.RunnerPath
	}
	return vstest.ExecutablePath(h.cfg.Run.PackageCacheRoot, h.cfg.Run.RunnerVersion)
}

// Run builds the arguments and runs the runner to completion. A configuration
// problem is logged and the run continues. The error is non-nil only when the
// runner could not be run; a failing test run is reported through Result.
func (h *Harness) Run(ctx context.Context) (*Result, error) {
	if h.cfg.Run == nil {
		return nil, fmt.Errorf("run configuration cannot be nil")
	}
	run := h.cfg.Run

	args := vstest.BuildArgs(run, h.logger)
	for _, p := range args.Problems {
		h.publish(events.EventConfigProblem{Message: p})
	}

	result := &Result{
		TestFile:    run.TestFile,
		RunnerPath:  h.RunnerPath(),
		CommandLine: args.CommandLine(),
		ExitCode:    -1,
		Problems:    args.Problems,
	}

	if run.Framework != "" {
		h.logger.Info(fmt.Sprintf("Test run for %s (%s)", run.TestFile, run.Framework))
	}
	h.logger.Debug("VSTest command line", "path", result.RunnerPath, "args", result.CommandLine)
	h.publish(events.EventRunnerStarted{Path: result.RunnerPath, CommandLine: result.CommandLine})

	start := h.clock.Now()
	code, err := h.runner.Run(ctx, result.RunnerPath, args.Tokens)
	result.Duration = h.clock.Since(start)
	if err != nil {
		h.logger.Error("Failed to run vstest.console", "path", result.RunnerPath, "error", err)
		h.publish(events.EventProcessError{Component: "runner", Error: err})
		return result, fmt.Errorf("running %s: %w", result.RunnerPath, err)
	}

	result.ExitCode = code
	result.Passed = code == 0
	h.publish(events.EventRunnerExited{ExitCode: code, Duration: result.Duration})

	if result.Passed {
		h.logger.Debug("vstest.console succeeded", "duration", result.Duration)
	} else {
		h.logger.Warn("vstest.console reported failure", "exit_code", code)
	}
	return result, nil
}

// publish sends a lifecycle event; failures only get logged.
func (h *Harness) publish(payload any) {
	if err := events.Publish(h.cfg.Broker, payload); err != nil {
		h.logger.Debug("Failed to publish event", "event", fmt.Sprintf("%T", payload), "error", err)
	}
}
