//go:build !windows

package runner

import (
	"context"
	"os/exec"

	"github.com/perbu/vstestrun/pkg/escape"
)

// command splits the escaped command line back into argv the way the runner
// would on Windows, so the child sees the same arguments on every platform.
func command(ctx context.Context, path, cmdline string) *exec.Cmd {
	return exec.CommandContext(ctx, path, escape.Split(cmdline)...)
}
