// SPDX-License-Identifier: MPL-2.0

// Command rombuild builds romboss for the host and for every configured
// target triple, installs the host binary and stages release artifacts.
//
// Configuration is read from rombuild.cue in the project directory (or the
// file named by --config) and may be overridden by ROMBUILD_* variables.
package main
