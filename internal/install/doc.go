// SPDX-License-Identifier: MPL-2.0

// Package install copies the host build of the binary to <prefix>/bin/<name>.
//
// The prefix itself must already exist; only the fixed bin subdirectory is
// created beneath it. Cross-compiled artifacts are never installed.
package install
