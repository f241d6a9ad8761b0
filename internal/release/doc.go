// SPDX-License-Identifier: MPL-2.0

// Package release stages cross-compiled binaries into a flat release
// directory, renamed to <name>-<triple> (plus .exe for windows targets).
//
// Staging is all-or-nothing with respect to preconditions: every artifact is
// checked before the first copy, so a missing one never leaves a partially
// populated directory behind. Staging is idempotent; repeating it over the
// same artifacts yields byte-identical files.
package release
