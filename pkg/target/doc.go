// SPDX-License-Identifier: MPL-2.0

// Package target models the cross-compilation target matrix.
//
// A Target pairs an opaque target triple (e.g. "x86_64-unknown-linux-gnu")
// with a platform family tag. The family only selects the release file naming
// convention: Windows-family artifacts carry the ".exe" suffix, all others do
// not. A Matrix is the ordered list of configured targets; Matrix.Validate
// enforces at configuration-load time that every target produces a distinct
// release file name.
package target
