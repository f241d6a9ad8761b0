// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It centralizes GOOS name constants, executable suffix selection and the
// Windows reserved filename rules that a release binary name must respect.
package platform
