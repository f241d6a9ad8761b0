// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
)

// ErrInvalidFormat is returned for unknown output formats.
var ErrInvalidFormat = errors.New("invalid output format")

type (
	// Format selects the serialization of an Info.
	Format string

	// InvalidFormatError reports an unsupported -o value.
	InvalidFormatError struct {
		Value string
	}
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", &InvalidFormatError{Value: s}
	}
}

// Encode writes info to w in format f.
func Encode(w io.Writer, info Info, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(info)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(info); err != nil {
			return err
		}
		return enc.Close()
	default:
		return &InvalidFormatError{Value: string(f)}
	}
}

// Error implements the error interface for InvalidFormatError.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: json, yaml)", e.Value)
}

// Unwrap returns ErrInvalidFormat for errors.Is() compatibility.
func (e *InvalidFormatError) Unwrap() error { return ErrInvalidFormat }
