// SPDX-License-Identifier: MPL-2.0

// Package matrix builds every configured target in declared order, one
// compiler invocation at a time.
//
// The default policy is fail-fast: the first failure stops the run and the
// remaining targets are reported as skipped. WithContinueOnError builds every
// target and joins all failures; such a run never reports success while any
// target failed.
package matrix
