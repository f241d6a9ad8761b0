// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"romboss/internal/runner"
	"romboss/internal/toolchain"
	"romboss/pkg/fspath"
	"romboss/pkg/target"
	"romboss/pkg/types"
)

const (
	// LogLevelDebug logs every invocation.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs phase and target progress.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs warnings and errors only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is the sentinel error wrapped by InvalidLogLevelError.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidBinaryName is the sentinel error wrapped by InvalidBinaryNameError.
	ErrInvalidBinaryName = errors.New("invalid binary name")
	// ErrInvalidInstallConfig is the sentinel error wrapped by InvalidInstallConfigError.
	ErrInvalidInstallConfig = errors.New("invalid install config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// BinaryName is the base name of the produced executable, without suffix.
	BinaryName string

	// InvalidBinaryNameError is returned for empty names or names containing
	// path separators or whitespace.
	InvalidBinaryNameError struct {
		Value BinaryName
	}

	// InvalidInstallConfigError collects field errors of an InstallConfig.
	InvalidInstallConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError collects field errors of a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InstallConfig configures the install step.
	InstallConfig struct {
		// Prefix must exist; the binary goes to <prefix>/bin/<binary>.
		Prefix types.FilesystemPath `json:"prefix" mapstructure:"prefix" toml:"prefix"`
	}

	// LogConfig configures diagnostics.
	LogConfig struct {
		Level   LogLevel `json:"level" mapstructure:"level" toml:"level"`
		Verbose bool     `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// Config is the complete, explicit configuration of one rombuild run.
	// It is loaded once and passed to the pipeline; nothing reads it from
	// package state.
	Config struct {
		// Binary is the executable's base name.
		Binary BinaryName `json:"binary" mapstructure:"binary" toml:"binary"`
		// Package is the Go main package that produces Binary.
		Package string `json:"package" mapstructure:"package" toml:"package"`
		// Version is stamped into the binary through VersionVar.
		Version    string `json:"version" mapstructure:"version" toml:"version"`
		VersionVar string `json:"version_var" mapstructure:"version_var" toml:"version_var"`
		// ProjectDir is where the build tool runs. Relative paths below
		// are resolved against it.
		ProjectDir types.FilesystemPath `json:"project_dir" mapstructure:"project_dir" toml:"project_dir"`
		Toolchain  toolchain.Kind       `json:"toolchain" mapstructure:"toolchain" toml:"toolchain"`
		Runner     runner.Type          `json:"runner" mapstructure:"runner" toml:"runner"`
		TargetDir  types.FilesystemPath `json:"target_dir" mapstructure:"target_dir" toml:"target_dir"`
		ReleaseDir types.FilesystemPath `json:"release_dir" mapstructure:"release_dir" toml:"release_dir"`
		// ContinueOnError builds every target even after a failure.
		ContinueOnError bool          `json:"continue_on_error" mapstructure:"continue_on_error" toml:"continue_on_error"`
		Install         InstallConfig `json:"install" mapstructure:"install" toml:"install"`
		Targets         target.Matrix `json:"targets" mapstructure:"targets" toml:"targets"`
		Log             LogConfig     `json:"log" mapstructure:"log" toml:"log"`

		// Source is the file the configuration was read from, empty for defaults.
		Source string `json:"-" mapstructure:"-" toml:"-"`
	}
)

// DefaultTargets is the matrix used when the configuration names none.
func DefaultTargets() target.Matrix {
	return target.Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "aarch64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: target.FamilyWindows},
	}
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Binary:     "romboss",
		Package:    "./cmd/romboss",
		Version:    "dev",
		VersionVar: "main.Version",
		ProjectDir: ".",
		Toolchain:  toolchain.KindGo,
		Runner:     runner.TypeNative,
		TargetDir:  "target",
		ReleaseDir: "release",
		Install:    InstallConfig{Prefix: "/opt/local"},
		Targets:    DefaultTargets(),
		Log:        LogConfig{Level: LogLevelInfo},
	}
}

// Resolve returns p relative to the project directory unless it is absolute.
func (c *Config) Resolve(p types.FilesystemPath) string {
	return string(fspath.Resolve(c.ProjectDir, p))
}

// ReleasePath returns the resolved release staging directory.
func (c *Config) ReleasePath() string { return c.Resolve(c.ReleaseDir) }

// ToolchainSettings derives the compiler settings from the configuration.
func (c *Config) ToolchainSettings() toolchain.Settings {
	return toolchain.Settings{
		Binary:     string(c.Binary),
		ProjectDir: string(c.ProjectDir),
		TargetDir:  string(c.TargetDir),
		Package:    c.Package,
		Version:    c.Version,
		VersionVar: c.VersionVar,
	}
}

// IsValid returns whether the Config has valid fields, including the
// target matrix's naming invariants for the configured binary name.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Binary.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Toolchain.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Runner.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, p := range []types.FilesystemPath{c.ProjectDir, c.TargetDir, c.ReleaseDir} {
		if valid, fieldErrs := p.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Install.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if err := c.Targets.Validate(string(c.Binary)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// IsValid returns whether the InstallConfig has valid fields.
func (c InstallConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.Prefix.IsValid(); !valid {
		return false, []error{&InvalidInstallConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// String returns the string representation of the BinaryName.
func (n BinaryName) String() string { return string(n) }

// IsValid returns whether the BinaryName can name a file in every target's
// output directory.
func (n BinaryName) IsValid() (bool, []error) {
	s := string(n)
	if s == "" || strings.ContainsAny(s, `/\`) || strings.IndexFunc(s, isSpace) >= 0 {
		return false, []error{&InvalidBinaryNameError{Value: n}}
	}
	return true, nil
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// Level converts to the logger's level; unknown values map to info.
func (l LogLevel) Level() log.Level {
	lvl, err := log.ParseLevel(string(l))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface for InvalidBinaryNameError.
func (e *InvalidBinaryNameError) Error() string {
	return fmt.Sprintf("invalid binary name %q: must be a non-empty file name", e.Value)
}

// Unwrap returns ErrInvalidBinaryName for errors.Is() compatibility.
func (e *InvalidBinaryNameError) Unwrap() error { return ErrInvalidBinaryName }

// Error implements the error interface for InvalidInstallConfigError.
func (e *InvalidInstallConfigError) Error() string {
	return fmt.Sprintf("invalid install config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidInstallConfig for errors.Is() compatibility.
func (e *InvalidInstallConfigError) Unwrap() error { return ErrInvalidInstallConfig }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors, so errors.Is can
// reach sentinels such as target.ErrReleaseNameCollision.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
