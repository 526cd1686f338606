package predicate

import (
	"strings"

	"golang.org/x/mod/semver"
)

// canonicalVersion adds the "v" prefix semver expects.
func canonicalVersion(s string) string {
	if !strings.HasPrefix(s, "v") {
		return "v" + s
	}
	return s
}

// isSemanticVersion reports whether s is a full major.minor.patch version,
// with or without a leading "v".
func isSemanticVersion(s string) bool {
	v := canonicalVersion(s)
	if !semver.IsValid(v) {
		return false
	}
	core := strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") == 2
}
