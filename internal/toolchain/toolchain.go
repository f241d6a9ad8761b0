// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"romboss/internal/runner"
	"romboss/pkg/platform"
	"romboss/pkg/target"
)

const (
	// KindGo builds with `go build`, deriving GOOS/GOARCH from the triple.
	KindGo Kind = "go"
	// KindCargo builds with `cargo build --release`.
	KindCargo Kind = "cargo"

	// ReleaseProfile is the build profile directory name.
	ReleaseProfile = "release"
)

type (
	// Kind selects the build tool.
	Kind string

	// Settings configures a toolchain.
	Settings struct {
		// Binary is the produced executable's base name.
		Binary string
		// ProjectDir is where the build tool runs.
		ProjectDir string
		// TargetDir is the build output root, relative to ProjectDir unless absolute.
		TargetDir string
		// Package is the Go main package to build (go toolchain only).
		Package string
		// Version is stamped into the binary (go toolchain only).
		Version string
		// VersionVar is the fully qualified variable set through -X (go toolchain only).
		VersionVar string
		// Stdout and Stderr receive the compiler's own output.
		Stdout io.Writer
		Stderr io.Writer
	}

	// Toolchain compiles the binary for the host (nil target) or a triple.
	Toolchain interface {
		Kind() Kind
		// Check verifies the tool and its support for tgt are installed.
		Check(ctx context.Context, tgt *target.Target) error
		// Invocation returns the compiler command for tgt.
		Invocation(tgt *target.Target) (runner.Invocation, error)
		// ArtifactPath returns where the build for tgt leaves its binary.
		ArtifactPath(tgt *target.Target) string
	}
)

// New creates the toolchain for kind. ProjectDir is made absolute so that
// artifact paths stay valid regardless of the invocation's working directory.
func New(kind Kind, s Settings, r runner.Runner) (Toolchain, error) {
	if s.ProjectDir == "" {
		s.ProjectDir = "."
	}
	abs, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project dir: %w", err)
	}
	s.ProjectDir = abs
	if s.TargetDir == "" {
		s.TargetDir = "target"
	}

	switch kind {
	case KindGo:
		return &goToolchain{settings: s, runner: r}, nil
	case KindCargo:
		return &cargoToolchain{settings: s, runner: r}, nil
	default:
		return nil, &InvalidKindError{Value: kind}
	}
}

// Build checks the toolchain, then runs the compiler for tgt and returns the
// artifact path. A nil tgt builds for the host.
func Build(ctx context.Context, tc Toolchain, r runner.Runner, tgt *target.Target) (string, error) {
	if err := tc.Check(ctx, tgt); err != nil {
		return "", err
	}
	inv, err := tc.Invocation(tgt)
	if err != nil {
		return "", err
	}
	if err := r.Run(ctx, inv); err != nil {
		return "", classify(tc.Kind(), tgt, err)
	}
	return tc.ArtifactPath(tgt), nil
}

// IsValid returns whether the Kind is one of the supported toolchains.
func (k Kind) IsValid() (bool, []error) {
	switch k {
	case KindGo, KindCargo:
		return true, nil
	default:
		return false, []error{&InvalidKindError{Value: k}}
	}
}

// String returns the string representation of the Kind.
func (k Kind) String() string { return string(k) }

// outputRoot returns the absolute build output root.
func (s Settings) outputRoot() string {
	if filepath.IsAbs(s.TargetDir) {
		return s.TargetDir
	}
	return filepath.Join(s.ProjectDir, s.TargetDir)
}

// artifactPath applies the shared cargo-style layout.
func (s Settings) artifactPath(tgt *target.Target) string {
	if tgt == nil {
		return filepath.Join(s.outputRoot(), ReleaseProfile, s.Binary+platform.HostExeSuffix())
	}
	return filepath.Join(s.outputRoot(), string(tgt.Triple), ReleaseProfile, tgt.BinaryName(s.Binary))
}

func (s Settings) invocation(name string, args []string, env map[string]string) runner.Invocation {
	return runner.Invocation{
		Name:   name,
		Args:   args,
		Env:    env,
		Dir:    s.ProjectDir,
		Stdout: s.Stdout,
		Stderr: s.Stderr,
	}
}

// classify maps runner errors of a compiler run to the toolchain taxonomy.
func classify(kind Kind, tgt *target.Target, err error) error {
	var triple target.Triple
	if tgt != nil {
		triple = tgt.Triple
	}

	var notFound *runner.CommandNotFoundError
	if errors.As(err, &notFound) {
		return &ToolchainMissingError{Kind: kind, Triple: triple, Reason: notFound.Error()}
	}

	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return &BuildFailureError{Triple: triple, Code: exitErr.Code, Cause: err}
	}
	return &BuildFailureError{Triple: triple, Code: 1, Cause: err}
}
