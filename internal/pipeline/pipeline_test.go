// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"romboss/internal/config"
	"romboss/internal/install"
	"romboss/internal/matrix"
	"romboss/internal/release"
	"romboss/internal/runner"
	"romboss/internal/runner/runnertest"
	"romboss/internal/toolchain"
	"romboss/pkg/target"
	"romboss/pkg/types"
)

const distList = "linux/amd64\nlinux/arm64\nwindows/amd64\ndarwin/arm64\n"

func testConfig(t *testing.T, targets target.Matrix) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ProjectDir = types.FilesystemPath(t.TempDir())
	cfg.Targets = targets
	return cfg
}

func compilingFake() *runnertest.Fake {
	return runnertest.New().Handle("go", runnertest.BySubcommand(map[string]runnertest.Handler{
		"tool":  runnertest.Print(distList),
		"build": runnertest.WriteOutput("romboss"),
	}))
}

func newPipeline(t *testing.T, cfg *config.Config, fake runner.Runner, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(cfg, append([]Option{WithRunner(fake)}, opts...)...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}

func scenarioTargets() target.Matrix {
	return target.Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: target.FamilyWindows},
	}
}

func TestNew_InvalidToolchain(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	cfg.Toolchain = "bazel"
	if _, err := New(cfg, WithRunner(runnertest.New())); !errors.Is(err, toolchain.ErrInvalidKind) {
		t.Errorf("New() error = %v, want ErrInvalidKind", err)
	}
}

func TestNew_SelectsRunnerFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	cfg.Runner = runner.TypeVirtual
	p, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.runner.Name() != runner.TypeVirtual {
		t.Errorf("runner = %s, want virtual", p.runner.Name())
	}
}

func TestFullPipeline_StagesExactlyTheReleaseFiles(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	p := newPipeline(t, cfg, compilingFake())
	ctx := context.Background()

	report, err := p.AllTargets(ctx)
	if err != nil {
		t.Fatalf("AllTargets() error: %v", err)
	}
	if report.Count(matrix.StatusBuilt) != 2 {
		t.Fatalf("report = %+v", report.Results)
	}

	staged, err := p.ReleasePrep(ctx)
	if err != nil {
		t.Fatalf("ReleasePrep() error: %v", err)
	}
	if len(staged) != 2 {
		t.Fatalf("staged %d artifacts, want 2", len(staged))
	}

	entries, err := os.ReadDir(cfg.ReleasePath())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	want := []string{"romboss-x86_64-pc-windows-gnu.exe", "romboss-x86_64-unknown-linux-gnu"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("release dir = %v, want %v", names, want)
	}

	// Each staged file carries the bytes built for its own triple.
	for _, a := range staged {
		data, _ := os.ReadFile(a.Path)
		wantOS := "GOOS=" + map[target.Family]string{target.FamilyLinux: "linux", target.FamilyWindows: "windows"}[a.Target.Family]
		if !strings.Contains(string(data), wantOS) {
			t.Errorf("%s contains %q, want %s", a.Path, data, wantOS)
		}
	}
}

func TestReleasePrep_WithoutBuildFails(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	p := newPipeline(t, cfg, compilingFake())

	_, err := p.ReleasePrep(context.Background())
	if !errors.Is(err, release.ErrArtifactMissing) {
		t.Fatalf("ReleasePrep() error = %v, want ErrArtifactMissing", err)
	}
	if _, statErr := os.Stat(cfg.ReleasePath()); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("release dir created despite missing artifacts")
	}
}

func TestReleasePrep_AfterOneTargetDeleted(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	p := newPipeline(t, cfg, compilingFake())
	ctx := context.Background()

	if _, err := p.AllTargets(ctx); err != nil {
		t.Fatal(err)
	}
	linux := cfg.Targets[0]
	if err := os.Remove(p.Toolchain().ArtifactPath(&linux)); err != nil {
		t.Fatal(err)
	}

	_, err := p.ReleasePrep(ctx)
	var missing *release.ArtifactMissingError
	if !errors.As(err, &missing) || missing.Triple != linux.Triple {
		t.Fatalf("ReleasePrep() error = %v, want missing %s", err, linux.Triple)
	}
	if strings.Contains(err.Error(), string(cfg.Targets[1].Triple)) {
		t.Errorf("error names a triple that was built: %v", err)
	}
}

func TestBuildTarget(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	fake := compilingFake()
	p := newPipeline(t, cfg, fake)

	res, err := p.BuildTarget(context.Background(), "x86_64-pc-windows-gnu")
	if err != nil {
		t.Fatalf("BuildTarget() error: %v", err)
	}
	if res.Status != matrix.StatusBuilt || !strings.HasSuffix(res.Artifact, filepath.Join("x86_64-pc-windows-gnu", "release", "romboss.exe")) {
		t.Errorf("result = %+v", res)
	}

	_, err = p.BuildTarget(context.Background(), "riscv64gc-unknown-linux-gnu")
	if !errors.Is(err, target.ErrUnknownTarget) {
		t.Errorf("BuildTarget(unconfigured) error = %v, want ErrUnknownTarget", err)
	}
}

func TestAllTargets_FailFastAndKeepGoing(t *testing.T) {
	t.Parallel()

	targets := target.Matrix{
		{Triple: "x86_64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "aarch64-unknown-linux-gnu", Family: target.FamilyLinux},
		{Triple: "x86_64-pc-windows-gnu", Family: target.FamilyWindows},
	}
	failFirst := func() *runnertest.Fake {
		return runnertest.New().Handle("go", runnertest.BySubcommand(map[string]runnertest.Handler{
			"tool": runnertest.Print(distList),
			"build": func(inv runner.Invocation) error {
				if inv.Env["GOOS"] == "linux" && inv.Env["GOARCH"] == "amd64" {
					return runnertest.Fail(3)(inv)
				}
				return runnertest.WriteOutput("x")(inv)
			},
		}))
	}

	t.Run("fail-fast default", func(t *testing.T) {
		t.Parallel()
		report, err := newPipeline(t, testConfig(t, targets), failFirst()).AllTargets(context.Background())
		if !errors.Is(err, toolchain.ErrBuildFailure) {
			t.Fatalf("AllTargets() error = %v", err)
		}
		if report.Count(matrix.StatusSkipped) != 2 {
			t.Errorf("skipped = %d, want 2", report.Count(matrix.StatusSkipped))
		}
	})

	t.Run("continue on error", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t, targets)
		cfg.ContinueOnError = true
		report, err := newPipeline(t, cfg, failFirst()).AllTargets(context.Background())
		if err == nil {
			t.Fatal("AllTargets() reported success with a failed target")
		}
		if report.Count(matrix.StatusBuilt) != 2 || report.Count(matrix.StatusFailed) != 1 {
			t.Errorf("report = %+v", report.Results)
		}
	})

	t.Run("option overrides config", func(t *testing.T) {
		t.Parallel()
		report, _ := newPipeline(t, testConfig(t, targets), failFirst(), WithContinueOnError(true)).AllTargets(context.Background())
		if report.Count(matrix.StatusBuilt) != 2 {
			t.Errorf("report = %+v", report.Results)
		}
	})
}

func TestInstall(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	prefix := filepath.Join(t.TempDir(), "testprefix")
	if err := os.Mkdir(prefix, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Install.Prefix = types.FilesystemPath(prefix)
	fake := compilingFake()

	res, err := newPipeline(t, cfg, fake).Install(context.Background())
	if err != nil {
		t.Fatalf("Install() error: %v", err)
	}
	if res.Destination != install.Destination(prefix, "romboss") {
		t.Errorf("Destination = %q", res.Destination)
	}
	info, err := os.Stat(res.Destination)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		t.Errorf("installed binary not executable: %v", info.Mode())
	}

	// Install always builds for the host: no cross environment.
	for _, c := range fake.Calls() {
		if len(c.Args) > 0 && c.Args[0] == "build" && c.Env["GOOS"] != "" {
			t.Errorf("install built a cross artifact: %s", c.String())
		}
	}
}

func TestAll_MissingPrefix(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	cfg.Install.Prefix = types.FilesystemPath(filepath.Join(t.TempDir(), "missing"))

	_, err := newPipeline(t, cfg, compilingFake()).All(context.Background())
	if !errors.Is(err, install.ErrPathNotFound) {
		t.Fatalf("All() error = %v, want ErrPathNotFound", err)
	}
	if !strings.HasPrefix(err.Error(), "all: install: ") {
		t.Errorf("error not attributed to its phase: %v", err)
	}
}

func TestBuild_FailureStopsInstall(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, scenarioTargets())
	cfg.Install.Prefix = types.FilesystemPath(t.TempDir())
	fake := runnertest.New().Handle("go", runnertest.BySubcommand(map[string]runnertest.Handler{
		"build": runnertest.Fail(1),
	}))

	_, err := newPipeline(t, cfg, fake).Install(context.Background())
	if !errors.Is(err, toolchain.ErrBuildFailure) {
		t.Fatalf("Install() error = %v, want ErrBuildFailure", err)
	}
	if _, statErr := os.Stat(install.Destination(string(cfg.Install.Prefix), "romboss")); statErr == nil {
		t.Error("binary installed after failed build")
	}
}

func TestPhaseLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	cfg := testConfig(t, scenarioTargets())
	if _, err := newPipeline(t, cfg, compilingFake(), WithLogger(logger)).Build(context.Background()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"phase started", "phase finished", "phase=build"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}
