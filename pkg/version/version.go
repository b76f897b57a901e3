// Package version parses ObsidianIRC release tags and compares releases.
//
// Release tags take the form "v0.2.4" or "v0.2.4-build5": a semantic
// version plus an optional build number that disambiguates rebuilds of the
// same version.
package version

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Release is a parsed release tag.
type Release struct {
	// Version is the semantic version with its leading "v", e.g. "v0.2.4".
	Version string

	// Build is the build number from a "-buildN" suffix, 0 when absent.
	Build uint
}

// ParseTag parses a release tag such as "v0.2.4-build5". A missing leading
// "v" is tolerated; anything after the first dash is excluded from the
// version.
func ParseTag(tag string) Release {
	s := strings.TrimPrefix(tag, "v")
	base, _, _ := strings.Cut(s, "-")

	return Release{
		Version: "v" + base,
		Build:   buildNumber(tag),
	}
}

// buildNumber extracts N from a "-buildN" tag segment, 0 when absent or
// malformed.
func buildNumber(tag string) uint {
	for part := range strings.SplitSeq(tag, "-") {
		n, ok := strings.CutPrefix(part, "build")
		if !ok {
			continue
		}
		if v, err := strconv.ParseUint(n, 10, 32); err == nil {
			return uint(v)
		}
	}
	return 0
}

// Short returns the version without the leading "v", e.g. "0.2.4".
func (r Release) Short() string {
	return strings.TrimPrefix(r.Version, "v")
}

// IsNewer reports whether remote is a newer release than current. Equal
// semantic versions fall back to the build number. When either side is not
// a valid semantic version, any difference counts as newer.
func IsNewer(current, remote Release) bool {
	if !semver.IsValid(current.Version) || !semver.IsValid(remote.Version) {
		return current.Version != remote.Version
	}

	switch semver.Compare(remote.Version, current.Version) {
	case 1:
		return true
	case -1:
		return false
	}

	return remote.Build > current.Build
}
