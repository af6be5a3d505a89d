// Package versionutil canonicalizes upstream version identifiers so the same
// semantic version formatted differently by two APIs compares equal.
package versionutil

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Normalize strips every character outside [0-9a-zA-Z.-] and lower-cases the
// rest. Build metadata markers, decorative prefixes and whitespace all
// disappear; comparison is plain equality, never ordering. An empty or
// whitespace-only input normalizes to the empty string and matches nothing.
func Normalize(version string) string {
	var builder strings.Builder
	builder.Grow(len(version))

	for _, r := range version {
		switch {
		case r >= '0' && r <= '9':
			builder.WriteRune(r)
		case r >= 'a' && r <= 'z':
			builder.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			builder.WriteRune(r + ('a' - 'A'))
		case r == '.' || r == '-':
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// Equal reports whether two version strings normalize to the same non-empty
// canonical form.
func Equal(a string, b string) bool {
	normalized := Normalize(a)
	if normalized == "" {
		return false
	}
	return normalized == Normalize(b)
}

var dottedNumeric = regexp.MustCompile(`^\d+(\.\d+)*$`)

// IsGameVersion reports whether a tag is a plain dotted-numeric game version.
// Upstream tag lists mix loader names and snapshot labels into the same slice.
func IsGameVersion(tag string) bool {
	return dottedNumeric.MatchString(strings.TrimSpace(tag))
}

// Less orders two game versions semantically, so "1.9" sorts before "1.10".
// Values semver cannot parse fall back to plain string order.
func Less(a string, b string) bool {
	left, errLeft := semver.NewVersion(strings.TrimSpace(a))
	right, errRight := semver.NewVersion(strings.TrimSpace(b))
	if errLeft != nil || errRight != nil {
		return a < b
	}
	return left.LessThan(right)
}
