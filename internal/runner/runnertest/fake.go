// SPDX-License-Identifier: MPL-2.0

// Package runnertest provides a scripted Runner for tests that must not
// spawn real compilers.
package runnertest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"romboss/internal/runner"
	"romboss/pkg/types"
)

type (
	// Handler decides the outcome of one invocation.
	Handler func(inv runner.Invocation) error

	// Fake records invocations and dispatches them to handlers keyed by
	// executable name. Invocations without a handler succeed.
	Fake struct {
		mu       sync.Mutex
		handlers map[string]Handler
		calls    []runner.Invocation
	}
)

// New creates an empty Fake.
func New() *Fake {
	return &Fake{handlers: make(map[string]Handler)}
}

// Name reports the native type so callers cannot tell the difference.
func (f *Fake) Name() runner.Type { return runner.TypeNative }

// Handle registers h for invocations of name.
func (f *Fake) Handle(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = h
	return f
}

// Run records inv and runs its handler.
func (f *Fake) Run(ctx context.Context, inv runner.Invocation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	h := f.handlers[inv.Name]
	f.mu.Unlock()
	if h == nil {
		return nil
	}
	return h(inv)
}

// Calls returns a copy of the recorded invocations.
func (f *Fake) Calls() []runner.Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Invocation(nil), f.calls...)
}

// CommandLines returns the recorded invocations rendered as strings.
func (f *Fake) CommandLines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Print writes text to the invocation's stdout.
func Print(text string) Handler {
	return func(inv runner.Invocation) error {
		if inv.Stdout != nil {
			_, err := fmt.Fprint(inv.Stdout, text)
			return err
		}
		return nil
	}
}

// Fail returns an ExitError with code for every invocation.
func Fail(code int) Handler {
	return func(inv runner.Invocation) error {
		return &runner.ExitError{Command: inv.Name, Code: types.ExitCode(code)}
	}
}

// WriteOutput simulates a compiler: it writes content to the path that
// follows the "-o" flag, creating parent directories.
func WriteOutput(content string) Handler {
	return func(inv runner.Invocation) error {
		for i, a := range inv.Args {
			if a == "-o" && i+1 < len(inv.Args) {
				out := inv.Args[i+1]
				if !filepath.IsAbs(out) && inv.Dir != "" {
					out = filepath.Join(inv.Dir, out)
				}
				if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
					return err
				}
				return os.WriteFile(out, []byte(content+" "+strings.Join(envPairs(inv), " ")), 0o755)
			}
		}
		return fmt.Errorf("no -o flag in %s", inv.String())
	}
}

func envPairs(inv runner.Invocation) []string {
	pairs := []string{}
	for _, k := range []string{"GOOS", "GOARCH"} {
		if v, ok := inv.Env[k]; ok {
			pairs = append(pairs, k+"="+v)
		}
	}
	return pairs
}

// Missing behaves like an executable that is not on PATH.
func Missing() Handler {
	return func(inv runner.Invocation) error {
		return &runner.CommandNotFoundError{Command: inv.Name}
	}
}

// BySubcommand dispatches on the first argument, so one executable can
// answer several subcommands. Unknown subcommands succeed silently.
func BySubcommand(handlers map[string]Handler) Handler {
	return func(inv runner.Invocation) error {
		if len(inv.Args) == 0 {
			return nil
		}
		if h, ok := handlers[inv.Args[0]]; ok {
			return h(inv)
		}
		return nil
	}
}
