// SPDX-License-Identifier: MPL-2.0

// Package testutil provides filesystem helpers for tests that fail the test
// on error instead of returning it, so fixtures stay one line each.
package testutil
