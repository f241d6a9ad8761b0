// SPDX-License-Identifier: MPL-2.0

package fsutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExecutableMode is the permission every staged or installed binary gets.
const ExecutableMode os.FileMode = 0o755

// Copied describes a completed copy.
type Copied struct {
	Size   int64
	SHA256 string
}

// CopyFile copies src to dst byte for byte and sets perm on the result.
// The data is written to a temp file in dst's directory and renamed over
// dst, so readers never observe a partially written file and an existing
// dst is replaced in one step. src is left in place.
//
// Errors from the OS are wrapped with %w so callers can classify them with
// errors.Is(err, fs.ErrNotExist) and errors.Is(err, fs.ErrPermission).
func CopyFile(src, dst string, perm os.FileMode) (_ Copied, err error) {
	in, err := os.Open(src)
	if err != nil {
		return Copied{}, fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = in.Close() }() // read-only

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+"-*")
	if err != nil {
		return Copied{}, fmt.Errorf("creating temp file for %s: %w", dst, err)
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	hash := sha256.New()
	n, err := io.Copy(io.MultiWriter(tmp, hash), in)
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return Copied{}, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	if err := os.Chmod(tmp.Name(), perm); err != nil {
		return Copied{}, fmt.Errorf("setting permissions on %s: %w", dst, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return Copied{}, fmt.Errorf("moving %s into place: %w", dst, err)
	}
	renamed = true

	return Copied{Size: n, SHA256: hex.EncodeToString(hash.Sum(nil))}, nil
}

// SHA256File returns the hex-encoded SHA-256 of the file at path.
func SHA256File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }() // read-only

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// IsRegularFile reports whether path exists and is a regular file.
func IsRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
