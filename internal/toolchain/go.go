// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"romboss/internal/runner"
	"romboss/pkg/target"
)

// goToolchain builds with the Go compiler. Cross builds are pure Go
// (CGO_ENABLED=0), so no C cross toolchain is required.
type goToolchain struct {
	settings Settings
	runner   runner.Runner

	// ports caches `go tool dist list` for the toolchain's lifetime.
	ports map[string]bool
}

func (g *goToolchain) Kind() Kind { return KindGo }

func (g *goToolchain) Check(ctx context.Context, tgt *target.Target) error {
	if tgt == nil {
		_, err := runner.Output(ctx, g.runner, g.settings.invocation("go", []string{"env", "GOVERSION"}, nil))
		if err != nil {
			return missing(KindGo, nil, "go", err)
		}
		return nil
	}

	port, ok := goPortFor(tgt.Triple)
	if !ok {
		return &ToolchainMissingError{Kind: KindGo, Triple: tgt.Triple, Reason: "no Go port matches this triple"}
	}
	if g.ports == nil {
		out, err := runner.Output(ctx, g.runner, g.settings.invocation("go", []string{"tool", "dist", "list"}, nil))
		if err != nil {
			return missing(KindGo, tgt, "go", err)
		}
		g.ports = make(map[string]bool)
		sc := bufio.NewScanner(strings.NewReader(out))
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				g.ports[line] = true
			}
		}
	}
	if !g.ports[port.String()] {
		return &ToolchainMissingError{
			Kind:   KindGo,
			Triple: tgt.Triple,
			Reason: fmt.Sprintf("installed Go does not support %s", port),
		}
	}
	return nil
}

func (g *goToolchain) Invocation(tgt *target.Target) (runner.Invocation, error) {
	ldflags := "-s -w"
	if g.settings.VersionVar != "" && g.settings.Version != "" {
		ldflags += fmt.Sprintf(" -X %s=%s", g.settings.VersionVar, g.settings.Version)
	}
	pkg := g.settings.Package
	if pkg == "" {
		pkg = "."
	}
	args := []string{"build", "-trimpath", "-ldflags", ldflags, "-o", g.ArtifactPath(tgt), pkg}

	if tgt == nil {
		return g.settings.invocation("go", args, nil), nil
	}
	port, ok := goPortFor(tgt.Triple)
	if !ok {
		return runner.Invocation{}, &ToolchainMissingError{Kind: KindGo, Triple: tgt.Triple, Reason: "no Go port matches this triple"}
	}
	return g.settings.invocation("go", args, port.environ()), nil
}

func (g *goToolchain) ArtifactPath(tgt *target.Target) string {
	return g.settings.artifactPath(tgt)
}
