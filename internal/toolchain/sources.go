// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"path"
	"strings"
)

var (
	sourceExts = map[Kind][]string{
		KindGo:    {".go", ".s", ".c", ".h"},
		KindCargo: {".rs"},
	}
	manifestFiles = map[Kind][]string{
		KindGo:    {"go.mod", "go.sum"},
		KindCargo: {"Cargo.toml", "Cargo.lock", "build.rs"},
	}
)

// IsSource reports whether a slash-separated path is an input of a build
// with kind: a source file or a module manifest.
func IsSource(kind Kind, rel string) bool {
	base := path.Base(rel)
	for _, m := range manifestFiles[kind] {
		if base == m {
			return true
		}
	}
	for _, ext := range sourceExts[kind] {
		if strings.HasSuffix(base, ext) {
			return !strings.HasSuffix(base, "_test.go")
		}
	}
	return false
}
