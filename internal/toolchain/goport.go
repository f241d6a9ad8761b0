// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"strings"

	"golang.org/x/exp/slices"

	"romboss/pkg/target"
)

// goPort is the GOOS/GOARCH pair (plus GOARM where it matters) for a triple.
type goPort struct {
	GOOS   string
	GOARCH string
	GOARM  string
}

var (
	goArchByToken = map[string]string{
		"x86_64":      "amd64",
		"amd64":       "amd64",
		"i386":        "386",
		"i586":        "386",
		"i686":        "386",
		"aarch64":     "arm64",
		"arm64":       "arm64",
		"riscv64":     "riscv64",
		"riscv64gc":   "riscv64",
		"powerpc64le": "ppc64le",
		"powerpc64":   "ppc64",
		"s390x":       "s390x",
		"mips64el":    "mips64le",
		"mips64":      "mips64",
		"mipsel":      "mipsle",
		"mips":        "mips",
		"loongarch64": "loong64",
		"wasm32":      "wasm",
	}

	// Order matters: "android" wins over "linux" and "ios" over "apple".
	goOSTokens = []struct {
		token string
		goos  string
	}{
		{"android", "android"},
		{"ios", "ios"},
		{"darwin", "darwin"},
		{"apple", "darwin"},
		{"windows", "windows"},
		{"linux", "linux"},
		{"freebsd", "freebsd"},
		{"netbsd", "netbsd"},
		{"openbsd", "openbsd"},
		{"dragonfly", "dragonfly"},
		{"illumos", "illumos"},
		{"solaris", "solaris"},
		{"wasi", "wasip1"},
	}
)

// goPortFor maps a target triple to its Go port. The second result is false
// when either the architecture or the operating system has no Go equivalent.
func goPortFor(t target.Triple) (goPort, bool) {
	parts := t.Components()
	if len(parts) == 0 {
		return goPort{}, false
	}

	var port goPort
	arch := parts[0]
	switch {
	case strings.HasPrefix(arch, "armv7"), strings.HasPrefix(arch, "thumbv7"):
		port.GOARCH, port.GOARM = "arm", "7"
	case arch == "arm", strings.HasPrefix(arch, "armv6"):
		port.GOARCH, port.GOARM = "arm", "6"
	default:
		goarch, ok := goArchByToken[arch]
		if !ok {
			return goPort{}, false
		}
		port.GOARCH = goarch
	}

	rest := parts[1:]
	for _, candidate := range goOSTokens {
		if slices.Contains(rest, candidate.token) {
			port.GOOS = candidate.goos
			return port, true
		}
	}
	return goPort{}, false
}

// String returns the pair in `go tool dist list` notation.
func (p goPort) String() string { return p.GOOS + "/" + p.GOARCH }

// environ returns the cross-compilation environment for the port.
func (p goPort) environ() map[string]string {
	env := map[string]string{
		"CGO_ENABLED": "0",
		"GOOS":        p.GOOS,
		"GOARCH":      p.GOARCH,
	}
	if p.GOARM != "" {
		env["GOARM"] = p.GOARM
	}
	return env
}
