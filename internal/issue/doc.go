// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError records what the pipeline was doing, which triple or path
// was involved and how to fix it. The issue catalog carries Markdown guidance
// for each failure kind, rendered with glamour in verbose mode.
package issue
