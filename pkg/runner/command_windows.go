//go:build windows

package runner

import (
	"context"
	"os/exec"
	"syscall"

	"github.com/perbu/vstestrun/pkg/escape"
)

// command hands the already escaped command line to CreateProcess unchanged.
func command(ctx context.Context, path, cmdline string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, path)
	full := escape.Escape(path)
	if cmdline != "" {
		full += " " + cmdline
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: full}
	return cmd
}
