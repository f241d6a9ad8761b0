// SPDX-License-Identifier: MPL-2.0

package matrix

import "github.com/charmbracelet/log"

// Option configures a Runner.
type Option func(*Runner)

// WithContinueOnError keeps building after a failed target.
func WithContinueOnError(enabled bool) Option {
	return func(r *Runner) {
		r.continueOnError = enabled
	}
}

// WithLogger sets the logger for per-target progress.
func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
