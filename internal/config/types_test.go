// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	"romboss/pkg/types"
)

func TestBinaryName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  BinaryName
		valid bool
	}{
		{"romboss", true},
		{"rom-boss_2.x", true},
		{"", false},
		{"bin/romboss", false},
		{`bin\romboss`, false},
		{"rom boss", false},
	}
	for _, tt := range tests {
		valid, errs := tt.name.IsValid()
		if valid != tt.valid {
			t.Errorf("BinaryName(%q).IsValid() = %v, want %v", tt.name, valid, tt.valid)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidBinaryName) {
			t.Errorf("BinaryName(%q) error does not wrap ErrInvalidBinaryName", tt.name)
		}
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level LogLevel
		valid bool
		want  log.Level
	}{
		{LogLevelDebug, true, log.DebugLevel},
		{LogLevelInfo, true, log.InfoLevel},
		{LogLevelWarn, true, log.WarnLevel},
		{LogLevelError, true, log.ErrorLevel},
		{"trace", false, log.InfoLevel},
	}
	for _, tt := range tests {
		valid, errs := tt.level.IsValid()
		if valid != tt.valid {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.level, valid, tt.valid)
		}
		if !valid && !errors.Is(errs[0], ErrInvalidLogLevel) {
			t.Errorf("LogLevel(%q) error does not wrap ErrInvalidLogLevel", tt.level)
		}
		if got := tt.level.Level(); got != tt.want {
			t.Errorf("LogLevel(%q).Level() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestConfig_IsValid_CollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Binary = ""
	cfg.Toolchain = "bazel"
	cfg.Install.Prefix = "  "

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true")
	}
	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatalf("error %T is not *InvalidConfigError", errs[0])
	}
	for _, want := range []error{ErrInvalidBinaryName, ErrInvalidInstallConfig} {
		if !errors.Is(errs[0], want) {
			t.Errorf("errors do not include %v", want)
		}
	}
}

func TestLoadOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (LoadOptions{}).Validate(); err != nil {
		t.Errorf("empty LoadOptions invalid: %v", err)
	}
	err := LoadOptions{ConfigFilePath: types.FilesystemPath("   ")}.Validate()
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Validate() error = %v, want ErrInvalidLoadOptions", err)
	}
}
