// SPDX-License-Identifier: MPL-2.0

package release

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"romboss/internal/testutil"
	"romboss/pkg/target"
)

// dirLocator lays artifacts out the way cargo does.
type dirLocator struct {
	root   string
	binary string
}

func (l dirLocator) ArtifactPath(tgt *target.Target) string {
	return filepath.Join(l.root, string(tgt.Triple), "release", tgt.BinaryName(l.binary))
}

func scenarioMatrix() target.Matrix {
	return target.Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: target.FamilyWindows},
	}
}

// buildAll writes a distinct fake binary for every target.
func buildAll(t *testing.T, loc dirLocator, m target.Matrix) {
	t.Helper()
	for _, tgt := range m {
		testutil.MustWriteFile(t, loc.ArtifactPath(&tgt), []byte("binary for "+string(tgt.Triple)), 0o755)
	}
}

func TestStage_Scenario(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	loc := dirLocator{root: filepath.Join(root, "target"), binary: "romboss"}
	m := scenarioMatrix()
	buildAll(t, loc, m)

	stageDir := filepath.Join(root, "release")
	staged, err := NewStager("romboss", stageDir, loc).Stage(context.Background(), m)
	if err != nil {
		t.Fatalf("Stage() error: %v", err)
	}

	want := []string{"romboss-x86_64-pc-windows-gnu.exe", "romboss-x86_64-unknown-linux-gnu"}
	if got := testutil.MustReadDirNames(t, stageDir); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("staging dir = %v, want %v", got, want)
	}

	for _, a := range staged {
		src := testutil.MustReadFile(t, a.Source)
		dst := testutil.MustReadFile(t, a.Path)
		if !bytes.Equal(src, dst) {
			t.Errorf("%s content differs from source", a.Path)
		}
		if a.Size != int64(len(src)) || len(a.SHA256) != 64 {
			t.Errorf("artifact metadata = %+v", a)
		}
		if _, err := os.Stat(a.Source); err != nil {
			t.Errorf("source %s removed by staging", a.Source)
		}
		if runtime.GOOS != "windows" {
			info, _ := os.Stat(a.Path)
			if info.Mode().Perm() != 0o755 {
				t.Errorf("%s mode = %v", a.Path, info.Mode().Perm())
			}
		}
	}
}

func TestStage_Idempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	loc := dirLocator{root: root, binary: "romboss"}
	m := scenarioMatrix()
	buildAll(t, loc, m)
	stager := NewStager("romboss", filepath.Join(root, "out"), loc)

	first, err := stager.Stage(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	second, err := stager.Stage(context.Background(), m)
	if err != nil {
		t.Fatalf("second Stage() error: %v", err)
	}
	for i := range first {
		if first[i].SHA256 != second[i].SHA256 || first[i].Path != second[i].Path {
			t.Errorf("stage %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	if got := testutil.MustReadDirNames(t, stager.Dir()); len(got) != 2 {
		t.Errorf("staging dir = %v, want 2 files", got)
	}
}

func TestStage_MissingArtifact(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	loc := dirLocator{root: root, binary: "romboss"}
	m := scenarioMatrix()
	buildAll(t, loc, m)

	missing := m[1]
	if err := os.Remove(loc.ArtifactPath(&missing)); err != nil {
		t.Fatal(err)
	}

	stageDir := filepath.Join(root, "out")
	staged, err := NewStager("romboss", stageDir, loc).Stage(context.Background(), m)
	if !errors.Is(err, ErrArtifactMissing) {
		t.Fatalf("Stage() error = %v, want ErrArtifactMissing", err)
	}
	var missingErr *ArtifactMissingError
	if !errors.As(err, &missingErr) || missingErr.Triple != missing.Triple {
		t.Errorf("missing triple = %v, want %s", missingErr, missing.Triple)
	}
	if !strings.Contains(err.Error(), string(missing.Triple)) {
		t.Errorf("error %q does not name the triple", err)
	}
	if staged != nil {
		t.Errorf("Stage() returned artifacts on failure: %v", staged)
	}
	if _, statErr := os.Stat(stageDir); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("staging dir created despite missing artifact")
	}
}

func TestStage_ReportsEveryMissingTriple(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	_, err := NewStager("romboss", filepath.Join(root, "out"), dirLocator{root: root, binary: "romboss"}).
		Stage(context.Background(), scenarioMatrix())
	if err == nil {
		t.Fatal("Stage() succeeded with no artifacts built")
	}
	for _, tgt := range scenarioMatrix() {
		if !strings.Contains(err.Error(), string(tgt.Triple)) {
			t.Errorf("error %q does not name %s", err, tgt.Triple)
		}
	}
}

func TestStage_PerTargetBuildThenStage(t *testing.T) {
	t.Parallel()

	m := target.Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "aarch64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: target.FamilyWindows},
		{Triple: "aarch64-pc-windows-gnullvm", Family: target.FamilyWindows},
	}
	for _, tgt := range m {
		t.Run(string(tgt.Triple), func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			loc := dirLocator{root: root, binary: "romboss"}
			single := target.Matrix{tgt}
			buildAll(t, loc, single)

			staged, err := NewStager("romboss", filepath.Join(root, "out"), loc).Stage(context.Background(), single)
			if err != nil {
				t.Fatal(err)
			}
			want := "romboss-" + string(tgt.Triple)
			if tgt.Family == target.FamilyWindows {
				want += ".exe"
			}
			if got := filepath.Base(staged[0].Path); got != want {
				t.Errorf("release name = %q, want %q", got, want)
			}
		})
	}
}

func TestWriteChecksums(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteChecksums(&buf, []Artifact{
		{Path: "/r/romboss-x86_64-unknown-linux-gnu", SHA256: "aa"},
		{Path: "/r/romboss-x86_64-pc-windows-gnu.exe", SHA256: "bb"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "aa  romboss-x86_64-unknown-linux-gnu\nbb  romboss-x86_64-pc-windows-gnu.exe\n"
	if buf.String() != want {
		t.Errorf("WriteChecksums() = %q, want %q", buf.String(), want)
	}
}
