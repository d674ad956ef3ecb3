package update

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Version is a parsed version: the leading run of dot-separated numbers of a
// version string. Anything after that run ("-beta", "_rc1", " (42)") is
// ignored for ordering.
type Version struct {
	Segments []int
	Raw      string

	core *goversion.Version
}

// numericPrefix matches the dotted numeric core with an optional 'v' prefix.
var numericPrefix = regexp.MustCompile(`^[vV]?(\d+(?:\.\d+)*)`)

// ParseVersion parses a version string into its numeric components.
// Accepts "1.2.3", "v1.2", "2.0-beta", "3.1.4 (build 77)" and the like.
// Returns an error if the string does not start with a number.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}

	matches := numericPrefix.FindStringSubmatch(s)
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version format: %s", s)
	}

	parts := strings.Split(matches[1], ".")
	segments := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version segment %q in %s: %w", p, s, err)
		}
		segments = append(segments, n)
	}

	core, err := goversion.NewVersion(matches[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid version format: %s: %w", s, err)
	}

	return Version{Segments: segments, Raw: s, core: core}, nil
}

// String returns the numeric core, e.g. "1.2.3".
func (v Version) String() string {
	parts := make([]string, len(v.Segments))
	for i, seg := range v.Segments {
		parts[i] = strconv.Itoa(seg)
	}
	return strings.Join(parts, ".")
}

// Valid reports whether v came from a successful ParseVersion.
func (v Version) Valid() bool {
	return v.core != nil
}

// Compare compares two versions component by component, padding the shorter
// one with zeros.
// Returns:
//
//	-1 if v < other
//	 0 if v == other
//	 1 if v > other
func (v Version) Compare(other Version) int {
	switch {
	case v.core == nil && other.core == nil:
		return 0
	case v.core == nil:
		return -1
	case other.core == nil:
		return 1
	}
	return v.core.Compare(other.core)
}

// LessThan returns true if v < other.
func (v Version) LessThan(other Version) bool {
	return v.Compare(other) < 0
}

// GreaterThan returns true if v > other.
func (v Version) GreaterThan(other Version) bool {
	return v.Compare(other) > 0
}

// Equal returns true if v == other.
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// IsNewer reports whether latest is strictly newer than installed.
// Unparsable input on either side is never newer.
func IsNewer(latest, installed string) bool {
	l, err := ParseVersion(latest)
	if err != nil {
		return false
	}
	i, err := ParseVersion(installed)
	if err != nil {
		return false
	}
	return l.GreaterThan(i)
}

// IsUpdateAvailable decides whether u is newer than the installed build.
// Version codes win when both sides carry one; otherwise the version strings
// are compared.
func IsUpdateAvailable(installed string, installedCode int, u Update) bool {
	if installedCode > 0 && u.LatestVersionCode > 0 {
		return u.LatestVersionCode > installedCode
	}
	return IsNewer(u.LatestVersion, installed)
}
