// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"romboss/internal/runner"
	"romboss/pkg/target"
)

// cargoToolchain builds with cargo; cross support is detected through rustup.
type cargoToolchain struct {
	settings Settings
	runner   runner.Runner

	installed map[string]bool
}

func (c *cargoToolchain) Kind() Kind { return KindCargo }

func (c *cargoToolchain) Check(ctx context.Context, tgt *target.Target) error {
	if _, err := runner.Output(ctx, c.runner, c.settings.invocation("cargo", []string{"--version"}, nil)); err != nil {
		return missing(KindCargo, tgt, "cargo", err)
	}
	if tgt == nil {
		return nil
	}

	if c.installed == nil {
		out, err := runner.Output(ctx, c.runner, c.settings.invocation("rustup", []string{"target", "list", "--installed"}, nil))
		if err != nil {
			return missing(KindCargo, tgt, "rustup", err)
		}
		c.installed = make(map[string]bool)
		sc := bufio.NewScanner(strings.NewReader(out))
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				c.installed[line] = true
			}
		}
	}
	if !c.installed[string(tgt.Triple)] {
		return &ToolchainMissingError{
			Kind:   KindCargo,
			Triple: tgt.Triple,
			Reason: "rust target not installed (rustup target add " + string(tgt.Triple) + ")",
		}
	}
	return nil
}

func (c *cargoToolchain) Invocation(tgt *target.Target) (runner.Invocation, error) {
	args := []string{"build", "--release", "--bin", c.settings.Binary, "--target-dir", c.settings.outputRoot()}
	if tgt != nil {
		args = append(args, "--target", string(tgt.Triple))
	}
	return c.settings.invocation("cargo", args, nil), nil
}

func (c *cargoToolchain) ArtifactPath(tgt *target.Target) string {
	return c.settings.artifactPath(tgt)
}

func missing(kind Kind, tgt *target.Target, tool string, err error) error {
	var triple target.Triple
	if tgt != nil {
		triple = tgt.Triple
	}
	reason := err.Error()
	if errors.Is(err, runner.ErrCommandNotFound) {
		reason = tool + " not found in PATH"
	}
	return &ToolchainMissingError{Kind: kind, Triple: triple, Reason: reason}
}
