// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"romboss/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime evaluates invocations with the mvdan/sh interpreter.
// External programs are still executed as processes; the interpreter
// owns PATH lookup, environment and working directory handling.
type VirtualRuntime struct{}

// NewVirtual creates a virtual runner.
func NewVirtual() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runner type.
func (r *VirtualRuntime) Name() Type { return TypeVirtual }

// Run parses the quoted command line and runs it in a fresh interpreter.
func (r *VirtualRuntime) Run(ctx context.Context, inv Invocation) error {
	quoted := make([]string, 0, len(inv.Args)+1)
	for _, a := range inv.Argv() {
		quoted = append(quoted, quote(a))
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(strings.Join(quoted, " ")), inv.Name)
	if err != nil {
		return fmt.Errorf("failed to parse invocation: %w", err)
	}

	stdout, stderr := inv.streams()
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(inv.environ()...)),
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandlers(r.execHandler),
	}
	if inv.Dir != "" {
		opts = append(opts, interp.Dir(inv.Dir))
	}

	sh, err := interp.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := sh.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return &ExitError{Command: inv.Name, Code: types.ExitCode(status)}
		}
		return err
	}
	return nil
}

// execHandler reports unknown executables as CommandNotFoundError instead of
// the interpreter's generic exit status 127.
func (r *VirtualRuntime) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		hc := interp.HandlerCtx(ctx)
		if _, err := interp.LookPathDir(hc.Dir, hc.Env, args[0]); err != nil {
			return &CommandNotFoundError{Command: args[0]}
		}
		return next(ctx, args)
	}
}
