package harness

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// OutputOptions configures output formatting
type OutputOptions struct {
	Verbose bool
	Color   bool
}

// Formatter prints run summaries
type Formatter struct {
	options OutputOptions
	writer  io.Writer
	pass    *color.Color
	fail    *color.Color
	dim     *color.Color
}

// ShouldUseColor reports whether stdout is a terminal and NO_COLOR is unset
func ShouldUseColor() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
}

// NewFormatter creates a new output formatter
func NewFormatter(options OutputOptions, writer io.Writer) *Formatter {
	if writer == nil {
		writer = os.Stdout
	}

	f := &Formatter{
		options: options,
		writer:  writer,
		pass:    color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		dim:     color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{f.pass, f.fail, f.dim} {
		if options.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// FormatResult prints a one-line summary of result
func (f *Formatter) FormatResult(result *Result) {
	name := result.TestFile
	if name == "" {
		name = "(no test file)"
	}

	if result.Passed {
		fmt.Fprintf(f.writer, "%s: %s (%dms)\n", f.pass.Sprint("PASS"), name, result.Duration.Milliseconds())
	} else {
		fmt.Fprintf(f.writer, "%s: %s (exit code %d)\n", f.fail.Sprint("FAIL"), name, result.ExitCode)
	}

	for _, p := range result.Problems {
		fmt.Fprintf(f.writer, "  - %s\n", p)
	}

	if f.options.Verbose {
		fmt.Fprintf(f.writer, "  %s %s %s\n", f.dim.Sprint("runner:"), result.RunnerPath, result.CommandLine)
	}
}
