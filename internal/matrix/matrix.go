// SPDX-License-Identifier: MPL-2.0

package matrix

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"romboss/internal/runner"
	"romboss/internal/toolchain"
	"romboss/pkg/target"
)

const (
	// StatusBuilt marks a target whose compiler invocation succeeded.
	StatusBuilt Status = "built"
	// StatusFailed marks a target whose check or compiler invocation failed.
	StatusFailed Status = "failed"
	// StatusSkipped marks a target never attempted because the run stopped early.
	StatusSkipped Status = "skipped"
)

// ErrMatrixFailed is wrapped by the error of a run with at least one failed target.
var ErrMatrixFailed = errors.New("target matrix build failed")

type (
	// Status is the outcome of one target.
	Status string

	// Result records one target's outcome.
	Result struct {
		Target   target.Target
		Status   Status
		Artifact string
		Duration time.Duration
		Err      error
	}

	// Report holds the results of a run in declared order.
	Report struct {
		Results  []Result
		Duration time.Duration
	}

	// Runner invokes the toolchain once per target.
	Runner struct {
		toolchain       toolchain.Toolchain
		runner          runner.Runner
		logger          *log.Logger
		continueOnError bool
	}
)

// New creates a Runner. Without WithLogger progress is discarded.
func New(tc toolchain.Toolchain, r runner.Runner, opts ...Option) *Runner {
	m := &Runner{
		toolchain: tc,
		runner:    r,
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run builds each target of targets in order. The returned Report is
// complete even when the error is non-nil.
func (m *Runner) Run(ctx context.Context, targets target.Matrix) (Report, error) {
	start := time.Now()
	report := Report{Results: make([]Result, 0, len(targets))}
	var errs []error

	for i, tgt := range targets {
		if err := ctx.Err(); err != nil {
			report.skip(targets[i:])
			errs = append(errs, err)
			break
		}

		m.logger.Info("building target", "triple", tgt.Triple, "family", tgt.Family)
		res := m.build(ctx, tgt)
		report.Results = append(report.Results, res)

		if res.Err == nil {
			m.logger.Info("built target", "triple", tgt.Triple, "artifact", res.Artifact, "duration", res.Duration.Round(time.Millisecond))
			continue
		}

		m.logger.Error("target failed", "triple", tgt.Triple, "error", res.Err)
		errs = append(errs, res.Err)
		if !m.continueOnError {
			report.skip(targets[i+1:])
			break
		}
	}

	report.Duration = time.Since(start)
	if len(errs) == 0 {
		return report, nil
	}
	return report, &FailedError{Failures: errs}
}

func (m *Runner) build(ctx context.Context, tgt target.Target) Result {
	start := time.Now()
	artifact, err := toolchain.Build(ctx, m.toolchain, m.runner, &tgt)
	res := Result{Target: tgt, Artifact: artifact, Duration: time.Since(start), Err: err}
	if err != nil {
		res.Status = StatusFailed
		res.Artifact = ""
	} else {
		res.Status = StatusBuilt
	}
	return res
}

func (r *Report) skip(rest target.Matrix) {
	for _, tgt := range rest {
		r.Results = append(r.Results, Result{Target: tgt, Status: StatusSkipped})
	}
}

// Succeeded reports whether every target was built.
func (r Report) Succeeded() bool {
	for _, res := range r.Results {
		if res.Status != StatusBuilt {
			return false
		}
	}
	return true
}

// Count returns the number of results with status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Artifacts maps each built triple to its artifact path.
func (r Report) Artifacts() map[target.Triple]string {
	out := make(map[target.Triple]string, len(r.Results))
	for _, res := range r.Results {
		if res.Status == StatusBuilt {
			out[res.Target.Triple] = res.Artifact
		}
	}
	return out
}
