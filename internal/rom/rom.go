// SPDX-License-Identifier: MPL-2.0

package rom

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrInvalidHeader is returned when no valid header is found.
	ErrInvalidHeader = errors.New("invalid ROM header")
	// ErrInvalidSize is returned when the image size fits no known layout.
	ErrInvalidSize = errors.New("invalid ROM size")
)

type (
	// Info is a decoded cartridge header.
	Info interface {
		Platform() Platform
	}

	// InvalidHeaderError reports an image that is too short or whose header
	// fails validation.
	InvalidHeaderError struct {
		Platform Platform
		Reason   string
	}

	// InvalidSizeError reports an image whose size is not a whole number of
	// KiB, optionally preceded by a 512-byte copier header.
	InvalidSizeError struct {
		Size      int64
		Remainder int64
	}

	parser func(r io.ReaderAt, size int64) (Info, error)
)

var parsers = map[Platform]parser{
	PlatformSNES:      func(r io.ReaderAt, size int64) (Info, error) { return ParseSNES(r, size) },
	PlatformMegaDrive: func(r io.ReaderAt, size int64) (Info, error) { return ParseMegaDrive(r, size) },
	PlatformNDS:       func(r io.ReaderAt, size int64) (Info, error) { return ParseNDS(r, size) },
}

// Inspect opens path and decodes its header. PlatformAuto (or "") detects
// the platform from the file extension.
func Inspect(path string, p Platform) (Info, error) {
	if p == "" || p == PlatformAuto {
		var err error
		if p, err = DetectPlatform(path); err != nil {
			return nil, err
		}
	}
	parse, ok := parsers[p]
	if !ok {
		return nil, &UnknownPlatformError{Label: string(p)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return parse(f, st.Size())
}

// readAt reads exactly n bytes at off, reporting a short image as an
// InvalidHeaderError.
func readAt(r io.ReaderAt, p Platform, off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := r.ReadAt(buf, off); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, &InvalidHeaderError{
				Platform: p,
				Reason:   fmt.Sprintf("image too short for a header at %#x", off),
			}
		}
		return nil, err
	}
	return buf, nil
}

// lookup describes code using table, falling back to "Unknown 0x..".
func lookup(table map[byte]string, code byte) string {
	if s, ok := table[code]; ok {
		return s
	}
	return fmt.Sprintf("Unknown %#x", code)
}

// Error implements the error interface for InvalidHeaderError.
func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid %s header: %s", e.Platform, e.Reason)
}

// Unwrap returns ErrInvalidHeader for errors.Is() compatibility.
func (e *InvalidHeaderError) Unwrap() error { return ErrInvalidHeader }

// Error implements the error interface for InvalidSizeError.
func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("image size %d is not a multiple of 1024 (remainder %d)", e.Size, e.Remainder)
}

// Unwrap returns ErrInvalidSize for errors.Is() compatibility.
func (e *InvalidSizeError) Unwrap() error { return ErrInvalidSize }
