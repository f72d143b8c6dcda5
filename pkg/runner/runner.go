// Package runner starts the test runner executable and relays its output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/perbu/vstestrun/pkg/escape"
)

// DefaultSource is the source attribute of relayed output lines.
const DefaultSource = "vstest.console"

// Runner runs one child process per call to Run.
type Runner struct {
	logger *slog.Logger
	source string
	dir    string
}

// New creates a Runner that relays child output to logger.
func New(logger *slog.Logger) *Runner {
	return &Runner{
		logger: logger,
		source: DefaultSource,
	}
}

// WithSource sets the source attribute attached to relayed lines.
func (r *Runner) WithSource(source string) *Runner {
	r.source = source
	return r
}

// WithDir sets the working directory of the child.
func (r *Runner) WithDir(dir string) *Runner {
	r.dir = dir
	return r
}

// Run starts path with the escaped tokens joined into one command line, relays
// stdout and stderr line by line while it runs and returns its exit code. An
// error is returned only when the process could not be started or waited for;
// a non-zero exit code is not an error.
func (r *Runner) Run(ctx context.Context, path string, tokens []string) (int, error) {
	cmdline := escape.Join(tokens)
	cmd := command(ctx, path, cmdline)
	cmd.Dir = r.dir
	cmd.Env = os.Environ()

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return -1, fmt.Errorf("stderr pipe: %w", err)
	}

	r.logger.Debug("Starting runner", "path", path, "args", cmdline)
	if err := cmd.Start(); err != nil {
		return -1, fmt.Errorf("cmd.Start: %w", err)
	}

	// Both pipes must be drained before Wait, which closes them.
	var g errgroup.Group
	g.Go(func() error {
		return relay(stdout, newLineLogger(r.logger, r.source, "stdout"))
	})
	g.Go(func() error {
		return relay(stderr, newLineLogger(r.logger, r.source, "stderr"))
	})
	drainErr := g.Wait()

	waitErr := cmd.Wait()
	if drainErr != nil {
		r.logger.Warn("Reading runner output failed", "error", drainErr)
	}
	code := exitCode(waitErr, cmd.ProcessState)
	if code < 0 {
		return code, fmt.Errorf("runner process failed: %w", waitErr)
	}
	r.logger.Debug("Runner exited", "exit_code", code)
	return code, nil
}

// exitCode extracts the exit status. It is -1 when the process state is
// unknown or the process was killed by a signal.
func exitCode(waitErr error, state *os.ProcessState) int {
	if state != nil {
		return state.ExitCode()
	}
	if waitErr == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.ProcessState != nil {
		return exitErr.ProcessState.ExitCode()
	}
	return -1
}
