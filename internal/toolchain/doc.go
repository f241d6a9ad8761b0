// SPDX-License-Identifier: MPL-2.0

// Package toolchain invokes the compiler for the host or for one target triple
// in release mode and knows where each build leaves its binary.
//
// Artifacts follow cargo's layout for both supported toolchains:
//
//	<target-dir>/release/<name>[.exe]            host build
//	<target-dir>/<triple>/release/<name>[.exe]   cross build
//
// A missing build tool or missing cross support is reported as
// ToolchainMissingError before anything is compiled; a compiler that exits
// non-zero is reported as BuildFailureError. Nothing is retried.
package toolchain
