// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"romboss/internal/fsutil"
	"romboss/pkg/platform"
)

const (
	// DefaultPrefix is the install prefix used when none is configured.
	DefaultPrefix = "/opt/local"
	// BinDir is the fixed subpath below the prefix.
	BinDir = "bin"
)

var (
	// ErrPathNotFound is the sentinel error wrapped by PathNotFoundError.
	ErrPathNotFound = errors.New("path not found")
	// ErrPermissionDenied is the sentinel error wrapped by PermissionDeniedError.
	ErrPermissionDenied = errors.New("permission denied")
)

type (
	// PathNotFoundError reports a missing prefix or host artifact.
	PathNotFoundError struct {
		Path string
		What string
	}

	// PermissionDeniedError reports a destination that cannot be written.
	PermissionDeniedError struct {
		Path  string
		Cause error
	}

	// Result describes a completed install.
	Result struct {
		Source      string
		Destination string
		Size        int64
		SHA256      string
	}
)

// Destination returns <prefix>/bin/<binary> with the host executable suffix.
func Destination(prefix, binary string) string {
	return filepath.Join(prefix, BinDir, binary+platform.HostExeSuffix())
}

// Install copies the host artifact at source to Destination(prefix, binary)
// with mode 0755, replacing any previous install.
func Install(source, prefix, binary string) (Result, error) {
	if !fsutil.IsRegularFile(source) {
		return Result{}, &PathNotFoundError{Path: source, What: "host artifact"}
	}

	info, err := os.Stat(prefix)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return Result{}, &PathNotFoundError{Path: prefix, What: "install prefix"}
	case errors.Is(err, fs.ErrPermission):
		return Result{}, &PermissionDeniedError{Path: prefix, Cause: err}
	case err != nil:
		return Result{}, fmt.Errorf("checking install prefix: %w", err)
	case !info.IsDir():
		return Result{}, &PathNotFoundError{Path: prefix, What: "install prefix directory"}
	}

	binDir := filepath.Join(prefix, BinDir)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return Result{}, classify(binDir, err)
	}

	dest := Destination(prefix, binary)
	copied, err := fsutil.CopyFile(source, dest, fsutil.ExecutableMode)
	if err != nil {
		return Result{}, classify(dest, err)
	}
	return Result{Source: source, Destination: dest, Size: copied.Size, SHA256: copied.SHA256}, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrPermission):
		return &PermissionDeniedError{Path: path, Cause: err}
	case errors.Is(err, fs.ErrNotExist):
		return &PathNotFoundError{Path: path, What: "install destination"}
	default:
		return fmt.Errorf("installing to %s: %w", path, err)
	}
}

// Error implements the error interface for PathNotFoundError.
func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

// Unwrap returns ErrPathNotFound for errors.Is() compatibility.
func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }

// Error implements the error interface for PermissionDeniedError.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied writing %s", e.Path)
}

// Unwrap returns ErrPermissionDenied and the OS error.
func (e *PermissionDeniedError) Unwrap() []error {
	return []error{ErrPermissionDenied, e.Cause}
}
