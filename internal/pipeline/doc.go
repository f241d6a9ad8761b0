// SPDX-License-Identifier: MPL-2.0

// Package pipeline exposes the rombuild phases: build, install, all,
// per-target build, all-targets and release-prep.
//
// A Pipeline is constructed from an explicit config.Config and holds no
// package state, so several pipelines can coexist in one process (tests do
// this). Phases run strictly sequentially and stop at the first failure
// unless the configuration opts into continue-on-error for the matrix.
package pipeline
