// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"

	// WindowsExeSuffix is appended to executables built for Windows.
	WindowsExeSuffix = ".exe"
)

// ExeSuffix returns the executable file suffix for the given GOOS value.
func ExeSuffix(goos string) string {
	if goos == Windows {
		return WindowsExeSuffix
	}
	return ""
}

// HostExeSuffix returns the executable file suffix for the running host.
func HostExeSuffix() string {
	return ExeSuffix(runtime.GOOS)
}
