// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"

	"romboss/internal/toolchain"
	"romboss/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode attaches the process status for err. A compiler failure
// propagates the compiler's own status; everything else exits 1.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

func exitCodeFor(err error) types.ExitCode {
	var buildErr *toolchain.BuildFailureError
	if errors.As(err, &buildErr) {
		return buildErr.Code.OrFailure()
	}
	return types.ExitFailure
}
