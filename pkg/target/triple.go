// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidTriple is the sentinel error wrapped by InvalidTripleError.
var ErrInvalidTriple = errors.New("invalid target triple")

type (
	// Triple identifies a platform/architecture/ABI combination.
	// Its content is opaque to the pipeline except for family inference
	// and toolchain-specific mapping.
	Triple string

	// InvalidTripleError is returned when a Triple is empty, contains
	// whitespace or contains a path separator.
	InvalidTripleError struct {
		Value  Triple
		Reason string
	}
)

// String returns the string representation of the Triple.
func (t Triple) String() string { return string(t) }

// IsValid returns whether the Triple can be used as part of a file name.
func (t Triple) IsValid() (bool, []error) {
	s := string(t)
	switch {
	case s == "":
		return false, []error{&InvalidTripleError{Value: t, Reason: "must be non-empty"}}
	case strings.ContainsFunc(s, unicode.IsSpace):
		return false, []error{&InvalidTripleError{Value: t, Reason: "must not contain whitespace"}}
	case strings.ContainsAny(s, `/\`):
		return false, []error{&InvalidTripleError{Value: t, Reason: "must not contain path separators"}}
	}
	return true, nil
}

// Components splits the triple on '-'.
func (t Triple) Components() []string {
	return strings.Split(string(t), "-")
}

// Arch returns the architecture component (the first one).
func (t Triple) Arch() string {
	return t.Components()[0]
}

// Error implements the error interface for InvalidTripleError.
func (e *InvalidTripleError) Error() string {
	return fmt.Sprintf("invalid target triple %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidTriple for errors.Is() compatibility.
func (e *InvalidTripleError) Unwrap() error { return ErrInvalidTriple }
