// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"

	"romboss/pkg/target"
	"romboss/pkg/types"
)

var (
	// ErrToolchainMissing is the sentinel error wrapped by ToolchainMissingError.
	ErrToolchainMissing = errors.New("toolchain missing")
	// ErrBuildFailure is the sentinel error wrapped by BuildFailureError.
	ErrBuildFailure = errors.New("build failure")
	// ErrInvalidKind is the sentinel error wrapped by InvalidKindError.
	ErrInvalidKind = errors.New("invalid toolchain kind")
)

type (
	// ToolchainMissingError reports a build tool, or its support for a
	// triple, that is not installed. Triple is empty for host builds.
	ToolchainMissingError struct {
		Kind   Kind
		Triple target.Triple
		Reason string
	}

	// BuildFailureError reports a compiler invocation that exited non-zero.
	BuildFailureError struct {
		Triple target.Triple
		Code   types.ExitCode
		Cause  error
	}

	// InvalidKindError is returned when a Kind value is not recognized.
	InvalidKindError struct {
		Value Kind
	}
)

// Error implements the error interface for ToolchainMissingError.
func (e *ToolchainMissingError) Error() string {
	if e.Triple == "" {
		return fmt.Sprintf("%s toolchain missing: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s toolchain missing for %s: %s", e.Kind, e.Triple, e.Reason)
}

// Unwrap returns ErrToolchainMissing for errors.Is() compatibility.
func (e *ToolchainMissingError) Unwrap() error { return ErrToolchainMissing }

// Error implements the error interface for BuildFailureError.
func (e *BuildFailureError) Error() string {
	subject := "host"
	if e.Triple != "" {
		subject = string(e.Triple)
	}
	return fmt.Sprintf("build for %s failed (exit status %d)", subject, e.Code)
}

// Unwrap returns ErrBuildFailure and the cause.
func (e *BuildFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrBuildFailure}
	}
	return []error{ErrBuildFailure, e.Cause}
}

// Error implements the error interface for InvalidKindError.
func (e *InvalidKindError) Error() string {
	return fmt.Sprintf("invalid toolchain %q (valid: go, cargo)", e.Value)
}

// Unwrap returns ErrInvalidKind for errors.Is() compatibility.
func (e *InvalidKindError) Unwrap() error { return ErrInvalidKind }
