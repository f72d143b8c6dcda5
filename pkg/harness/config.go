package harness

import (
	"context"
	"log/slog"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/borud/broker"

	"github.com/perbu/vstestrun/pkg/vstest"
)

// ProcessRunner starts the runner executable and reports its exit code.
// *runner.Runner is the production implementation.
type ProcessRunner interface {
	Run(ctx context.Context, path string, tokens []string) (int, error)
}

// Config holds configuration for the test harness.
type Config struct {
	// Run is the vstest.console configuration.
	Run *vstest.RunConfiguration

	// RunnerPath overrides the executable derived from the package cache
	// root and runner version.
	RunnerPath string

	// Verbose enables debug logging.
	Verbose bool

	// Logger is the structured logger to use. If nil, a default is created.
	Logger *slog.Logger

	// Broker receives lifecycle events when set.
	Broker *broker.Broker

	// Clock measures the run. Defaults to the real clock.
	Clock clock.Clock

	// Runner starts the process. Defaults to runner.New(Logger).
	Runner ProcessRunner
}

// Result holds the outcome of one runner invocation.
type Result struct {
	// TestFile is the test binary that was run.
	TestFile string

	// RunnerPath is the executable that was started.
	RunnerPath string

	// CommandLine is the argument string passed to the runner.
	CommandLine string

	// ExitCode is the runner's exit code, -1 if it did not run to completion.
	ExitCode int

	// Passed is true iff ExitCode is 0.
	Passed bool

	// Duration is the wall time of the runner process.
	Duration time.Duration

	// Problems are configuration errors reported while building the arguments.
	Problems []string
}
