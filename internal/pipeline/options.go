// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"io"

	"github.com/charmbracelet/log"

	"romboss/internal/runner"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRunner replaces the runner selected by the configuration.
func WithRunner(r runner.Runner) Option {
	return func(p *Pipeline) {
		p.runner = r
	}
}

// WithLogger sets the phase logger.
func WithLogger(logger *log.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCompilerOutput forwards the compiler's stdout and stderr.
func WithCompilerOutput(stdout, stderr io.Writer) Option {
	return func(p *Pipeline) {
		p.stdout = stdout
		p.stderr = stderr
	}
}

// WithContinueOnError overrides the configured matrix failure policy.
func WithContinueOnError(enabled bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = enabled
	}
}
