// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatCUE renders the configuration as a rombuild.cue document.
	FormatCUE Format = "cue"
	// FormatTOML renders the configuration as TOML.
	FormatTOML Format = "toml"
	// FormatJSON renders the configuration as indented JSON.
	FormatJSON Format = "json"
)

// ErrInvalidFormat is the sentinel error wrapped by InvalidFormatError.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects the rendering used by Render.
	Format string

	// InvalidFormatError is returned for unknown formats.
	InvalidFormatError struct {
		Value Format
	}
)

// Render serializes cfg in the requested format.
func Render(cfg *Config, f Format) (string, error) {
	switch f {
	case FormatCUE, "":
		return GenerateCUE(cfg), nil
	case FormatTOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("failed to encode config as TOML: %w", err)
		}
		return string(out), nil
	case FormatJSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode config as JSON: %w", err)
		}
		return string(out) + "\n", nil
	default:
		return "", &InvalidFormatError{Value: f}
	}
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format %q (valid: cue, toml, json)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }
