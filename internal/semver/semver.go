// Package semver validates and compares Bugster release version tokens.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Latest is the token that resolves to the newest published release at runtime.
const Latest = "latest"

// Release tags carry a mandatory leading 'v' and an optional pre-release
// suffix limited to alpha/beta/rc with a numeric counter, e.g. "v0.3.1-beta.2".
var tagRegex = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)(?:-(alpha|beta|rc)\.(\d+))?$`)

// Version represents a parsed release tag.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string // "alpha", "beta", "rc" or empty for stable
	PreNumber  int    // numeric suffix of the pre-release, 0 for stable
}

// ValidateToken checks a --version argument before any side effect.
// Accepts "latest" or a strict release tag.
func ValidateToken(token string) error {
	if token == Latest {
		return nil
	}
	if _, err := Parse(token); err != nil {
		return err
	}
	return nil
}

// Parse parses a release tag like "v1.2.3" or "v1.2.3-rc.1".
func Parse(s string) (*Version, error) {
	matches := tagRegex.FindStringSubmatch(s)
	if matches == nil {
		return nil, fmt.Errorf("invalid version %q (expected vX.Y.Z or vX.Y.Z-{alpha|beta|rc}.N)", s)
	}

	major, _ := strconv.Atoi(matches[1])
	minor, _ := strconv.Atoi(matches[2])
	patch, _ := strconv.Atoi(matches[3])

	v := &Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: matches[4],
	}
	if matches[5] != "" {
		v.PreNumber, _ = strconv.Atoi(matches[5])
	}
	return v, nil
}

// String returns the canonical tag form with the leading 'v'.
func (v *Version) String() string {
	s := fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += fmt.Sprintf("-%s.%d", v.Prerelease, v.PreNumber)
	}
	return s
}

// IsPrerelease reports whether the version carries a pre-release suffix.
func (v *Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// prereleaseRank orders pre-release channels below stable.
func prereleaseRank(tag string) int {
	switch tag {
	case "alpha":
		return 0
	case "beta":
		return 1
	case "rc":
		return 2
	default: // stable
		return 3
	}
}

// Compare compares two versions.
// Returns:
//   - 1 if v > other
//   - 0 if v == other
//   - -1 if v < other
func (v *Version) Compare(other *Version) int {
	if v.Major != other.Major {
		if v.Major > other.Major {
			return 1
		}
		return -1
	}

	if v.Minor != other.Minor {
		if v.Minor > other.Minor {
			return 1
		}
		return -1
	}

	if v.Patch != other.Patch {
		if v.Patch > other.Patch {
			return 1
		}
		return -1
	}

	// Same core version: stable > rc > beta > alpha, then numeric suffix.
	vRank, oRank := prereleaseRank(v.Prerelease), prereleaseRank(other.Prerelease)
	if vRank != oRank {
		if vRank > oRank {
			return 1
		}
		return -1
	}

	if v.PreNumber != other.PreNumber {
		if v.PreNumber > other.PreNumber {
			return 1
		}
		return -1
	}

	return 0
}

// IsGreaterThan returns true if v > other.
func (v *Version) IsGreaterThan(other *Version) bool {
	return v.Compare(other) > 0
}

// Normalize removes the 'v' prefix if present, for display.
func Normalize(s string) string {
	return strings.TrimPrefix(s, "v")
}
