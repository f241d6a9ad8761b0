// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "file.txt")
	MustWriteFile(t, path, []byte("payload"), 0o644)

	if got := string(MustReadFile(t, path)); got != "payload" {
		t.Errorf("MustReadFile() = %q, want payload", got)
	}
	if got := MustReadDirNames(t, filepath.Join(dir, "nested")); strings.Join(got, ",") != "deeper" {
		t.Errorf("MustReadDirNames() = %v", got)
	}
}

func TestMustReadDirNames_Sorted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"c", "a", "b"} {
		MustWriteFile(t, filepath.Join(dir, name), nil, 0o644)
	}
	if got := MustReadDirNames(t, dir); strings.Join(got, ",") != "a,b,c" {
		t.Errorf("MustReadDirNames() = %v, want [a b c]", got)
	}
}
