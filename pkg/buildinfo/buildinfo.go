// Package buildinfo exposes version metadata stamped into the binary.
package buildinfo

import (
	"runtime/debug"
)

// BinaryVersion is set at build time via -ldflags. Defaults to "dev".
var BinaryVersion = "dev"

// ModuleVersion returns the module version embedded by the Go toolchain,
// or "" when built outside module mode.
func ModuleVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return ""
}

// UserAgent returns the identifying User-Agent craftpkg sends to the
// registry, as its API terms require.
func UserAgent() string {
	return "craftpkg/" + BinaryVersion + " (github.com/craftpkg/craftpkg)"
}
