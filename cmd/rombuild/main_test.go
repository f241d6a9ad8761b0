// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"romboss/internal/install"
	"romboss/internal/issue"
	"romboss/internal/matrix"
	"romboss/internal/release"
	"romboss/internal/toolchain"
	"romboss/pkg/target"
	"romboss/pkg/types"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"rombuild": func() {
			os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
		},
	})
}

// TestScripts runs the CLI scripts in testdata/script. Scripts that drive a
// build put a fake `go` shell script first on PATH.
func TestScripts(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	buildErr := &toolchain.BuildFailureError{Triple: "x86_64-pc-windows-gnu", Code: 101}

	tests := []struct {
		name string
		err  error
		want types.ExitCode
	}{
		{"build failure", buildErr, 101},
		{"wrapped build failure", fmt.Errorf("target: %w", buildErr), 101},
		{"matrix failure", &matrix.FailedError{Failures: []error{buildErr}}, 101},
		{"zero compiler status", &toolchain.BuildFailureError{Code: 0}, types.ExitFailure},
		{"missing artifact", &release.ArtifactMissingError{Triple: "t", Path: "p"}, types.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}

	if withExitCode(nil) != nil {
		t.Error("withExitCode(nil) != nil")
	}
}

func TestIssueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"unknown target", &target.UnknownTargetError{Triple: "x"}, issue.UnknownTargetId},
		{"toolchain missing", &toolchain.ToolchainMissingError{Kind: toolchain.KindGo}, issue.ToolchainMissingId},
		{"build failure", &toolchain.BuildFailureError{Code: 2}, issue.BuildFailureId},
		{"artifact missing", &release.ArtifactMissingError{Triple: "t"}, issue.ArtifactMissingId},
		{"prefix missing", &install.PathNotFoundError{Path: "/nope", What: "install prefix"}, issue.PathNotFoundId},
		{"permission denied", &install.PermissionDeniedError{Path: "/opt"}, issue.PermissionDeniedId},
		{"actionable", issue.NewErrorContext().WithOperation("load").WithIssue(issue.ConfigLoadFailedId).Build(), issue.ConfigLoadFailedId},
		{"plain", errors.New("boom"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := issueFor(tt.err); got != tt.want {
				t.Errorf("issueFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
