// Package shell runs external binaries and turns their outcome into the
// driver's typed ShellError taxonomy (spec §7). Nothing above this package
// is allowed to call os/exec directly.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/marmotedu/errors"

	"github.com/wgquickrs/agent/internal/pkg/code"
)

// Run executes name with args, waits for it to exit, and returns its
// trimmed stdout. A non-empty stdin is written to the child's standard
// input before Wait.
func Run(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	if name == "" {
		return "", errors.WithCode(code.ErrShellEmpty, "shell command name is empty")
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}

	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", errors.WithCode(code.ErrShellFailed, "%s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", errors.WithCode(code.ErrShellIo, "failed to run %s: %s", name, err.Error())
	}

	return strings.TrimSpace(string(out)), nil
}
