// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"romboss/internal/testutil"
	"romboss/pkg/platform"
)

func hostArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "target", "release", "romboss")
	testutil.MustWriteFile(t, path, []byte("#!/bin/sh\necho romboss\n"), 0o755)
	return path
}

func TestDestination(t *testing.T) {
	t.Parallel()

	want := filepath.Join("/opt/local", "bin", "romboss"+platform.HostExeSuffix())
	if got := Destination(DefaultPrefix, "romboss"); got != want {
		t.Errorf("Destination() = %q, want %q", got, want)
	}
}

func TestInstall_ExistingPrefix(t *testing.T) {
	t.Parallel()

	src := hostArtifact(t)
	prefix := filepath.Join(t.TempDir(), "testprefix")
	if err := os.Mkdir(prefix, 0o755); err != nil {
		t.Fatal(err)
	}

	res, err := Install(src, prefix, "romboss")
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if res.Destination != Destination(prefix, "romboss") {
		t.Errorf("Destination = %q", res.Destination)
	}
	info, err := os.Stat(res.Destination)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		t.Errorf("installed binary not executable: %v", info.Mode())
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("source removed: %v", err)
	}

	// Reinstalling over an existing binary succeeds.
	if _, err := Install(src, prefix, "romboss"); err != nil {
		t.Errorf("second Install() error: %v", err)
	}
}

func TestInstall_MissingPrefix(t *testing.T) {
	t.Parallel()

	src := hostArtifact(t)
	prefix := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := Install(src, prefix, "romboss")
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("Install() error = %v, want ErrPathNotFound", err)
	}
	if _, statErr := os.Stat(prefix); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("Install() created the missing prefix")
	}
}

func TestInstall_PrefixIsFile(t *testing.T) {
	t.Parallel()

	src := hostArtifact(t)
	prefix := filepath.Join(t.TempDir(), "file")
	testutil.MustWriteFile(t, prefix, nil, 0o644)
	if _, err := Install(src, prefix, "romboss"); !errors.Is(err, ErrPathNotFound) {
		t.Errorf("Install() error = %v, want ErrPathNotFound", err)
	}
}

func TestInstall_MissingArtifact(t *testing.T) {
	t.Parallel()

	_, err := Install(filepath.Join(t.TempDir(), "romboss"), t.TempDir(), "romboss")
	var notFound *PathNotFoundError
	if !errors.As(err, &notFound) || notFound.What != "host artifact" {
		t.Errorf("Install() error = %v, want missing host artifact", err)
	}
}

func TestInstall_ReadOnlyPrefix(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores permission bits")
	}

	src := hostArtifact(t)
	prefix := t.TempDir()
	if err := os.Chmod(prefix, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(prefix, 0o755) })

	_, err := Install(src, prefix, "romboss")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("Install() error = %v, want ErrPermissionDenied", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("OS cause lost: %v", err)
	}
}
