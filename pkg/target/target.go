// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"
	"strings"

	"romboss/pkg/platform"
)

var (
	// ErrInvalidTarget is the sentinel error wrapped by InvalidTargetError.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrInvalidMatrix is the sentinel error wrapped by InvalidMatrixError.
	ErrInvalidMatrix = errors.New("invalid target matrix")
	// ErrDuplicateTriple is returned when a triple appears twice in a matrix.
	ErrDuplicateTriple = errors.New("duplicate target triple")
	// ErrReleaseNameCollision is returned when two targets map to one release file.
	ErrReleaseNameCollision = errors.New("release name collision")
	// ErrReservedBinaryName is returned when the binary name is reserved on Windows.
	ErrReservedBinaryName = errors.New("binary name reserved on windows")
	// ErrUnknownTarget is returned by Matrix.Lookup callers for unconfigured triples.
	ErrUnknownTarget = errors.New("unknown target")
)

type (
	// Target is one entry of the build matrix.
	Target struct {
		// Triple identifies the platform/architecture/ABI.
		Triple Triple `json:"triple" mapstructure:"triple" toml:"triple"`
		// Family selects the release naming convention.
		Family Family `json:"family" mapstructure:"family" toml:"family"`
	}

	// InvalidTargetError collects field-level validation errors of a Target.
	InvalidTargetError struct {
		Triple      Triple
		FieldErrors []error
	}

	// Matrix is the ordered list of configured targets.
	// Build order is declaration order.
	Matrix []Target

	// InvalidMatrixError collects every problem found by Matrix.Validate.
	InvalidMatrixError struct {
		FieldErrors []error
	}

	// NameCollisionError reports two targets whose release names collide.
	NameCollisionError struct {
		Name   string
		First  Triple
		Second Triple
	}

	// UnknownTargetError reports a triple that is not part of the matrix.
	UnknownTargetError struct {
		Triple Triple
	}
)

// New builds a Target, inferring the family from the triple when family is empty.
func New(triple Triple, family Family) (Target, error) {
	t := Target{Triple: triple, Family: family}
	if t.Family == "" {
		if inferred, ok := InferFamily(triple); ok {
			t.Family = inferred
		}
	}
	if valid, errs := t.IsValid(); !valid {
		return Target{}, errs[0]
	}
	return t, nil
}

// IsValid returns whether both the triple and the family are valid.
func (t Target) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := t.Triple.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := t.Family.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTargetError{Triple: t.Triple, FieldErrors: errs}}
	}
	return true, nil
}

// ReleaseName returns the staged file name: <binary>-<triple>[.exe].
func (t Target) ReleaseName(binary string) string {
	return binary + "-" + string(t.Triple) + t.Family.ExeSuffix()
}

// BinaryName returns the file name the toolchain produces for this target.
func (t Target) BinaryName(binary string) string {
	return binary + t.Family.ExeSuffix()
}

// String returns "<triple> (<family>)".
func (t Target) String() string {
	return fmt.Sprintf("%s (%s)", t.Triple, t.Family)
}

// Validate checks the matrix for the given binary name. Every target must be
// valid, no triple may repeat, and release names must be pairwise distinct.
// Names are compared case-insensitively since release directories often end
// up on case-insensitive filesystems.
func (m Matrix) Validate(binary string) error {
	var errs []error
	if len(m) == 0 {
		errs = append(errs, errors.New("at least one target is required"))
	}

	seenTriples := make(map[Triple]bool, len(m))
	seenNames := make(map[string]Triple, len(m))
	hasWindows := false

	for _, t := range m {
		if valid, fieldErrs := t.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
			continue
		}
		if seenTriples[t.Triple] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateTriple, t.Triple))
			continue
		}
		seenTriples[t.Triple] = true

		name := t.ReleaseName(binary)
		key := strings.ToLower(name)
		if first, exists := seenNames[key]; exists {
			errs = append(errs, &NameCollisionError{Name: name, First: first, Second: t.Triple})
			continue
		}
		seenNames[key] = t.Triple

		if t.Family == FamilyWindows {
			hasWindows = true
		}
	}

	if hasWindows && platform.IsWindowsReservedName(binary) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrReservedBinaryName, binary))
	}

	if len(errs) > 0 {
		return &InvalidMatrixError{FieldErrors: errs}
	}
	return nil
}

// Lookup returns the configured target for triple.
func (m Matrix) Lookup(triple Triple) (Target, error) {
	for _, t := range m {
		if t.Triple == triple {
			return t, nil
		}
	}
	return Target{}, &UnknownTargetError{Triple: triple}
}

// ByFamily returns the targets of one family, preserving order.
func (m Matrix) ByFamily(f Family) Matrix {
	var out Matrix
	for _, t := range m {
		if t.Family == f {
			out = append(out, t)
		}
	}
	return out
}

// Triples returns the triples in declaration order.
func (m Matrix) Triples() []Triple {
	out := make([]Triple, len(m))
	for i, t := range m {
		out[i] = t.Triple
	}
	return out
}

// Error implements the error interface for InvalidTargetError.
func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %s", e.Triple, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidTarget along with the field errors.
func (e *InvalidTargetError) Unwrap() []error {
	return append([]error{ErrInvalidTarget}, e.FieldErrors...)
}

// Error implements the error interface for InvalidMatrixError.
func (e *InvalidMatrixError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid target matrix: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidMatrix along with the field errors.
func (e *InvalidMatrixError) Unwrap() []error {
	return append([]error{ErrInvalidMatrix}, e.FieldErrors...)
}

// Error implements the error interface for NameCollisionError.
func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("targets %s and %s both stage as %q", e.First, e.Second, e.Name)
}

// Unwrap returns ErrReleaseNameCollision for errors.Is() compatibility.
func (e *NameCollisionError) Unwrap() error { return ErrReleaseNameCollision }

// Error implements the error interface for UnknownTargetError.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("target %q is not configured", e.Triple)
}

// Unwrap returns ErrUnknownTarget for errors.Is() compatibility.
func (e *UnknownTargetError) Unwrap() error { return ErrUnknownTarget }
