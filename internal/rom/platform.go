// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// PlatformAuto detects the platform from the file extension.
	PlatformAuto Platform = "auto"
	// PlatformSNES is the Super Nintendo / Super Famicom.
	PlatformSNES Platform = "snes"
	// PlatformMegaDrive is the Sega Mega Drive / Genesis.
	PlatformMegaDrive Platform = "megadrive"
	// PlatformNDS is the Nintendo DS.
	PlatformNDS Platform = "nds"
)

var (
	// ErrUnknownPlatform is returned for unrecognized platform labels.
	ErrUnknownPlatform = errors.New("unknown platform")
	// ErrUndetectablePlatform is returned when auto-detection fails.
	ErrUndetectablePlatform = errors.New("could not determine platform")
)

var (
	platformLabels = map[string]Platform{
		"snes":      PlatformSNES,
		"sfc":       PlatformSNES,
		"megadrive": PlatformMegaDrive,
		"genesis":   PlatformMegaDrive,
		"ds":        PlatformNDS,
		"nds":       PlatformNDS,
		"auto":      PlatformAuto,
	}

	platformExtensions = map[string]Platform{
		".smc": PlatformSNES,
		".sfc": PlatformSNES,
		".swc": PlatformSNES,
		".gen": PlatformMegaDrive,
		".md":  PlatformMegaDrive,
		".smd": PlatformMegaDrive,
		".nds": PlatformNDS,
	}
)

type (
	// Platform identifies a ROM header format.
	Platform string

	// UnknownPlatformError reports an unrecognized --platform label.
	UnknownPlatformError struct {
		Label string
	}

	// UndetectablePlatformError reports a path whose extension maps to no platform.
	UndetectablePlatformError struct {
		Path string
	}
)

// PlatformLabels returns the accepted --platform values.
func PlatformLabels() []string {
	return []string{"auto", "snes", "sfc", "megadrive", "genesis", "ds", "nds"}
}

// ParsePlatform maps a user label (case-insensitive) to a Platform.
func ParsePlatform(label string) (Platform, error) {
	if p, ok := platformLabels[strings.ToLower(label)]; ok {
		return p, nil
	}
	return "", &UnknownPlatformError{Label: label}
}

// DetectPlatform infers the platform from path's extension.
func DetectPlatform(path string) (Platform, error) {
	if p, ok := platformExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return p, nil
	}
	return "", &UndetectablePlatformError{Path: path}
}

// String returns the string representation of the Platform.
func (p Platform) String() string { return string(p) }

// Error implements the error interface for UnknownPlatformError.
func (e *UnknownPlatformError) Error() string {
	return fmt.Sprintf("unrecognised platform label %q (valid: %s)", e.Label, strings.Join(PlatformLabels(), ", "))
}

// Unwrap returns ErrUnknownPlatform for errors.Is() compatibility.
func (e *UnknownPlatformError) Unwrap() error { return ErrUnknownPlatform }

// Error implements the error interface for UndetectablePlatformError.
func (e *UndetectablePlatformError) Error() string {
	return fmt.Sprintf("could not determine the platform of %s from its extension; use -p to name it", e.Path)
}

// Unwrap returns ErrUndetectablePlatform for errors.Is() compatibility.
func (e *UndetectablePlatformError) Unwrap() error { return ErrUndetectablePlatform }
