// SPDX-License-Identifier: MPL-2.0

// Package runner executes build tool invocations.
//
// Two runners are provided: the native runner starts the process directly
// with os/exec, the virtual runner evaluates the invocation through the
// embedded mvdan/sh interpreter, which resolves commands against the
// interpreter's own environment. Both report a missing executable as
// CommandNotFoundError and a non-zero exit as ExitError.
package runner
