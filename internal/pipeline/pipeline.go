// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"romboss/internal/config"
	"romboss/internal/install"
	"romboss/internal/matrix"
	"romboss/internal/release"
	"romboss/internal/runner"
	"romboss/internal/toolchain"
	"romboss/pkg/target"
)

const (
	PhaseBuild       Phase = "build"
	PhaseInstall     Phase = "install"
	PhaseAll         Phase = "all"
	PhaseTarget      Phase = "target"
	PhaseAllTargets  Phase = "all-targets"
	PhaseReleasePrep Phase = "release-prep"
)

type (
	// Phase names an invocable pipeline step.
	Phase string

	// Pipeline runs phases against one configuration.
	Pipeline struct {
		cfg             *config.Config
		runner          runner.Runner
		toolchain       toolchain.Toolchain
		logger          *log.Logger
		stdout          io.Writer
		stderr          io.Writer
		continueOnError bool
	}
)

// New creates a Pipeline for cfg. The runner and toolchain are chosen from
// the configuration unless overridden by options.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:             cfg,
		logger:          log.New(io.Discard),
		continueOnError: cfg.ContinueOnError,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.runner == nil {
		r, err := runner.New(cfg.Runner)
		if err != nil {
			return nil, err
		}
		p.runner = r
	}

	settings := cfg.ToolchainSettings()
	settings.Stdout, settings.Stderr = p.stdout, p.stderr
	tc, err := toolchain.New(cfg.Toolchain, settings, p.runner)
	if err != nil {
		return nil, err
	}
	p.toolchain = tc
	return p, nil
}

// Config returns the configuration the pipeline runs with.
func (p *Pipeline) Config() *config.Config { return p.cfg }

// Toolchain returns the configured toolchain.
func (p *Pipeline) Toolchain() toolchain.Toolchain { return p.toolchain }

// Build compiles the binary for the host and returns the artifact path.
func (p *Pipeline) Build(ctx context.Context) (string, error) {
	var artifact string
	err := p.phase(PhaseBuild, func() error {
		var err error
		artifact, err = toolchain.Build(ctx, p.toolchain, p.runner, nil)
		return err
	})
	return artifact, err
}

// Install builds for the host, then copies the artifact to the prefix.
func (p *Pipeline) Install(ctx context.Context) (install.Result, error) {
	artifact, err := p.Build(ctx)
	if err != nil {
		return install.Result{}, err
	}

	var res install.Result
	err = p.phase(PhaseInstall, func() error {
		var err error
		res, err = install.Install(artifact, string(p.cfg.Install.Prefix), string(p.cfg.Binary))
		if err == nil {
			p.logger.Info("installed", "path", res.Destination, "sha256", res.SHA256)
		}
		return err
	})
	return res, err
}

// All runs build then install. Install already builds first, so All only
// adds its own phase bracket to the log.
func (p *Pipeline) All(ctx context.Context) (install.Result, error) {
	var res install.Result
	err := p.phase(PhaseAll, func() error {
		var err error
		res, err = p.Install(ctx)
		return err
	})
	return res, err
}

// BuildTarget compiles the binary for one configured triple.
func (p *Pipeline) BuildTarget(ctx context.Context, triple target.Triple) (matrix.Result, error) {
	tgt, err := p.cfg.Targets.Lookup(triple)
	if err != nil {
		return matrix.Result{}, err
	}

	var res matrix.Result
	err = p.phase(PhaseTarget, func() error {
		report, err := p.matrixRunner().Run(ctx, target.Matrix{tgt})
		res = report.Results[0]
		return err
	})
	return res, err
}

// AllTargets builds every configured target in declared order.
func (p *Pipeline) AllTargets(ctx context.Context) (matrix.Report, error) {
	var report matrix.Report
	err := p.phase(PhaseAllTargets, func() error {
		var err error
		report, err = p.matrixRunner().Run(ctx, p.cfg.Targets)
		return err
	})
	return report, err
}

// ReleasePrep stages the artifact of every configured target. It requires
// a previous all-targets run and fails without copying when any artifact
// is missing.
func (p *Pipeline) ReleasePrep(ctx context.Context) ([]release.Artifact, error) {
	var staged []release.Artifact
	err := p.phase(PhaseReleasePrep, func() error {
		var err error
		staged, err = p.Stager().Stage(ctx, p.cfg.Targets)
		for _, a := range staged {
			p.logger.Info("staged", "file", a.Path, "bytes", a.Size, "sha256", a.SHA256)
		}
		return err
	})
	return staged, err
}

// Stager returns the release stager for the configuration.
func (p *Pipeline) Stager() *release.Stager {
	return release.NewStager(string(p.cfg.Binary), p.cfg.ReleasePath(), p.toolchain)
}

func (p *Pipeline) matrixRunner() *matrix.Runner {
	return matrix.New(p.toolchain, p.runner,
		matrix.WithLogger(p.logger),
		matrix.WithContinueOnError(p.continueOnError),
	)
}

// phase brackets fn with start and finish log lines.
func (p *Pipeline) phase(name Phase, fn func() error) error {
	start := time.Now()
	p.logger.Debug("phase started", "phase", name)

	err := fn()
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		p.logger.Error("phase failed", "phase", name, "duration", elapsed, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	p.logger.Info("phase finished", "phase", name, "duration", elapsed)
	return nil
}
