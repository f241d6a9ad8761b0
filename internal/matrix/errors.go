// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"errors"
	"fmt"
)

// FailedError aggregates the failures of a run. Under fail-fast it holds
// exactly one failure.
type FailedError struct {
	Failures []error
}

// Error implements the error interface.
func (e *FailedError) Error() string {
	if len(e.Failures) == 1 {
		return fmt.Sprintf("%s: %v", ErrMatrixFailed, e.Failures[0])
	}
	return fmt.Sprintf("%s: %d targets failed:\n%v", ErrMatrixFailed, len(e.Failures), errors.Join(e.Failures...))
}

// Unwrap returns ErrMatrixFailed and every failure so errors.Is/As reach
// the per-target errors.
func (e *FailedError) Unwrap() []error {
	return append([]error{ErrMatrixFailed}, e.Failures...)
}
