// Package vstest builds the vstest.console command line for a RunConfiguration.
package vstest

import (
	"log/slog"

	"github.com/perbu/vstestrun/pkg/escape"
)

// ErrTestFileMissing is reported when the configuration names no test file.
const ErrTestFileMissing = "Test file path cannot be empty or null"

// state carries what earlier rules found out to the rules that follow them.
type state struct {
	consoleLoggerSpecifiedByUser bool
	collectingCodeCoverage       bool
	runSettingsEnabled           bool

	logger   *slog.Logger
	problems []string
}

// problem records and logs a configuration error without stopping the build.
func (st *state) problem(msg string) {
	st.problems = append(st.problems, msg)
	st.logger.Error(msg)
}

// BuildArgs constructs the vstest.console arguments for cfg. Rules are applied
// in a fixed order; the pass-through runner settings always come last.
func BuildArgs(cfg *RunConfiguration, logger *slog.Logger) *Args {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	st := &state{logger: logger}

	tokens := make([]string, 0, 16)
	for _, r := range rules {
		tokens = append(tokens, r.emit(cfg, st)...)
	}

	return &Args{
		Tokens:   tokens,
		Problems: st.problems,
	}
}

// CommandLine joins the tokens into the argument string handed to the runner.
func (a *Args) CommandLine() string {
	return escape.Join(a.Tokens)
}
