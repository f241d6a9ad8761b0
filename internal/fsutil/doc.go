// SPDX-License-Identifier: MPL-2.0

// Package fsutil copies build artifacts into place atomically and hashes them.
package fsutil
