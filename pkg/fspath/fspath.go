// SPDX-License-Identifier: MPL-2.0

// Package fspath wraps path/filepath for types.FilesystemPath so that
// configuration code keeps typed paths from input to output.
package fspath

import (
	"fmt"
	"path/filepath"

	"romboss/pkg/types"
)

// Join joins typed path elements.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr joins a typed base with literal segments such as file names.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs resolves p against the working directory.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Resolve returns p unchanged when it is absolute and joined to base
// otherwise.
func Resolve(base, p types.FilesystemPath) types.FilesystemPath {
	if IsAbs(p) {
		return p
	}
	return Join(base, p)
}
