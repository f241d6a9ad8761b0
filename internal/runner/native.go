// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"romboss/pkg/types"
)

// NativeRuntime starts invocations as child processes.
type NativeRuntime struct{}

// NewNative creates a native runner.
func NewNative() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runner type.
func (r *NativeRuntime) Name() Type { return TypeNative }

// Run starts the command and waits for it.
func (r *NativeRuntime) Run(ctx context.Context, inv Invocation) error {
	path, err := exec.LookPath(inv.Name)
	if err != nil {
		return &CommandNotFoundError{Command: inv.Name}
	}

	cmd := exec.CommandContext(ctx, path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = inv.environ()
	cmd.Stdout, cmd.Stderr = inv.streams()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: inv.Name, Code: types.ExitCode(exitErr.ExitCode())}
		}
		return fmt.Errorf("failed to run %s: %w", inv.Name, err)
	}
	return nil
}
