// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"romboss/pkg/types"

	"mvdan.cc/sh/v3/syntax"
)

const (
	// TypeNative runs the build tool as a child process.
	TypeNative Type = "native"
	// TypeVirtual runs the build tool through the mvdan/sh interpreter.
	TypeVirtual Type = "virtual"
)

var (
	// ErrCommandNotFound is returned when the executable is not on PATH.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandFailed is returned when the executable exits non-zero.
	ErrCommandFailed = errors.New("command failed")
	// ErrInvalidType is the sentinel error wrapped by InvalidTypeError.
	ErrInvalidType = errors.New("invalid runner type")
)

type (
	// Type selects a Runner implementation.
	Type string

	// InvalidTypeError is returned when a Type value is not recognized.
	InvalidTypeError struct {
		Value Type
	}

	// Invocation is one external command to run.
	Invocation struct {
		// Name is the executable (looked up on PATH).
		Name string
		// Args are the arguments after Name.
		Args []string
		// Env holds variables layered over the current process environment.
		Env map[string]string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Stdout and Stderr receive the command output; nil discards it.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Runner executes invocations. Run blocks until the command exits or
	// ctx is canceled.
	Runner interface {
		Name() Type
		Run(ctx context.Context, inv Invocation) error
	}

	// CommandNotFoundError reports an executable missing from PATH.
	CommandNotFoundError struct {
		Command string
	}

	// ExitError reports a command that exited with a non-zero status.
	ExitError struct {
		Command string
		Code    types.ExitCode
	}
)

// New returns the runner for t.
func New(t Type) (Runner, error) {
	switch t {
	case TypeNative, "":
		return NewNative(), nil
	case TypeVirtual:
		return NewVirtual(), nil
	default:
		return nil, &InvalidTypeError{Value: t}
	}
}

// IsValid returns whether the Type is one of the defined runners.
func (t Type) IsValid() (bool, []error) {
	switch t {
	case TypeNative, TypeVirtual:
		return true, nil
	default:
		return false, []error{&InvalidTypeError{Value: t}}
	}
}

// String returns the string representation of the Type.
func (t Type) String() string { return string(t) }

// Output runs inv on r and returns its trimmed standard output.
func Output(ctx context.Context, r Runner, inv Invocation) (string, error) {
	var stdout bytes.Buffer
	inv.Stdout = &stdout
	if err := r.Run(ctx, inv); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Argv returns the full argument vector including the executable.
func (inv Invocation) Argv() []string {
	return append([]string{inv.Name}, inv.Args...)
}

// String renders the invocation as a shell command line, env assignments first.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Env)+len(inv.Args)+1)
	for _, k := range sortedKeys(inv.Env) {
		parts = append(parts, k+"="+quote(inv.Env[k]))
	}
	for _, a := range inv.Argv() {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

// environ returns os.Environ() with inv.Env layered on top.
func (inv Invocation) environ() []string {
	env := os.Environ()
	for _, k := range sortedKeys(inv.Env) {
		env = append(env, k+"="+inv.Env[k])
	}
	return env
}

func (inv Invocation) streams() (io.Writer, io.Writer) {
	stdout, stderr := inv.Stdout, inv.Stderr
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return stdout, stderr
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return q
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error implements the error interface for InvalidTypeError.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid runner %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidType for errors.Is() compatibility.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// Error implements the error interface for CommandNotFoundError.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("%s: command not found in PATH", e.Command)
}

// Unwrap returns ErrCommandNotFound for errors.Is() compatibility.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Command, e.Code)
}

// Unwrap returns ErrCommandFailed for errors.Is() compatibility.
func (e *ExitError) Unwrap() error { return ErrCommandFailed }
