// SPDX-License-Identifier: MPL-2.0

package target

import (
	"errors"
	"fmt"

	"romboss/pkg/platform"

	"golang.org/x/exp/slices"
)

const (
	// FamilyLinux marks Linux targets. Release names carry no suffix.
	FamilyLinux Family = "linux"
	// FamilyWindows marks Windows targets. Release names end in ".exe".
	FamilyWindows Family = "windows"
	// FamilyDarwin marks macOS targets. Release names carry no suffix.
	FamilyDarwin Family = "darwin"
)

// ErrInvalidFamily is the sentinel error wrapped by InvalidFamilyError.
var ErrInvalidFamily = errors.New("invalid platform family")

type (
	// Family groups targets that share an output naming convention.
	Family string

	// InvalidFamilyError is returned when a Family value is not recognized.
	InvalidFamilyError struct {
		Value Family
	}
)

// Families returns every recognized family in declaration order.
func Families() []Family {
	return []Family{FamilyLinux, FamilyWindows, FamilyDarwin}
}

// String returns the string representation of the Family.
func (f Family) String() string { return string(f) }

// IsValid returns whether the Family is one of the recognized values.
func (f Family) IsValid() (bool, []error) {
	if slices.Contains(Families(), f) {
		return true, nil
	}
	return false, []error{&InvalidFamilyError{Value: f}}
}

// ExeSuffix returns the executable suffix used by this family.
func (f Family) ExeSuffix() string {
	return platform.ExeSuffix(string(f))
}

// InferFamily guesses the family from the OS component of a triple.
// It reports false when the triple names no known operating system.
func InferFamily(t Triple) (Family, bool) {
	for _, c := range t.Components()[1:] {
		switch c {
		case "windows":
			return FamilyWindows, true
		case "linux":
			return FamilyLinux, true
		case "darwin", "apple":
			return FamilyDarwin, true
		}
	}
	return "", false
}

// Error implements the error interface for InvalidFamilyError.
func (e *InvalidFamilyError) Error() string {
	return fmt.Sprintf("invalid platform family %q (valid: linux, windows, darwin)", e.Value)
}

// Unwrap returns ErrInvalidFamily for errors.Is() compatibility.
func (e *InvalidFamilyError) Unwrap() error { return ErrInvalidFamily }
