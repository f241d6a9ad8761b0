// SPDX-License-Identifier: MPL-2.0

// Package types holds small value types shared by the build pipeline and the
// CLIs: process exit codes and filesystem paths.
package types
