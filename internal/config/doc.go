// SPDX-License-Identifier: MPL-2.0

// Package config loads the rombuild project configuration using Viper with
// CUE as the file format.
//
// Configuration is read from rombuild.cue in the project directory, or from
// the file passed with --config. Every value has a default, so a project
// without a configuration file builds romboss for the default target
// matrix. Values can be overridden per invocation through ROMBUILD_*
// environment variables (ROMBUILD_INSTALL_PREFIX, ROMBUILD_CONTINUE_ON_ERROR,
// ...).
//
// Files are validated against the embedded schema (rombuild_schema.cue).
// Constraints CUE cannot express, such as injective release naming across
// the target matrix, are checked after decoding by Config.IsValid.
package config
