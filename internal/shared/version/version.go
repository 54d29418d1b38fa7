// Package version reports the build version of the modsoc binary.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X modsoc/internal/shared/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether version is a valid semver without a prerelease part.
func IsRelease(version string) bool {
	v := Normalize(version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// String formats the build version for display.
func String() string {
	v := Version
	if IsRelease(v) {
		v = semver.Canonical(Normalize(v))
	}
	if Commit == "" || Commit == "unknown" {
		return v
	}
	return fmt.Sprintf("%s (%s)", v, Commit)
}
