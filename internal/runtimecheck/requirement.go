// Package runtimecheck probes for and provisions the language runtimes the
// Bugster CLI needs before it can run.
package runtimecheck

import (
	"fmt"
	"regexp"
	"strconv"
)

// Requirement is a version floor for one runtime. Candidates are command
// names probed in descending preference order; the first one on PATH that
// satisfies the floor wins.
type Requirement struct {
	Name       string   // display name, e.g. "Python"
	Key        string   // package-manager lookup key, e.g. "python"
	Candidates []string // command names, most specific first
	MinMajor   int
	MinMinor   int
}

// Floor returns the minimum version as a display string.
func (r Requirement) Floor() string {
	return fmt.Sprintf("%d.%d", r.MinMajor, r.MinMinor)
}

// Python is the interpreter floor the product CLI requires.
var Python = Requirement{
	Name: "Python",
	Key:  "python",
	Candidates: []string{
		"python3.13",
		"python3.12",
		"python3.11",
		"python3.10",
		"python3",
		"python",
	},
	MinMajor: 3,
	MinMinor: 10,
}

// Node is the JS runtime floor the product CLI requires.
var Node = Requirement{
	Name:       "Node.js",
	Key:        "node",
	Candidates: []string{"node"},
	MinMajor:   18,
	MinMinor:   0,
}

// Runtime is a probed interpreter that satisfied a requirement. It is
// remembered for the rest of the run.
type Runtime struct {
	Command string `json:"command" yaml:"command"`
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// versionOutputRegex pulls the first dotted version out of interpreter
// banners like "Python 3.12.1" or "v22.11.0".
var versionOutputRegex = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// parseVersionOutput extracts major.minor from a --version banner.
func parseVersionOutput(out string) (major, minor int, version string, err error) {
	matches := versionOutputRegex.FindStringSubmatch(out)
	if matches == nil {
		return 0, 0, "", fmt.Errorf("no version number in output %q", out)
	}
	major, _ = strconv.Atoi(matches[1])
	minor, _ = strconv.Atoi(matches[2])
	return major, minor, matches[0], nil
}

// Satisfies reports whether major.minor meets the requirement floor.
func (r Requirement) Satisfies(major, minor int) bool {
	if major != r.MinMajor {
		return major > r.MinMajor
	}
	return minor >= r.MinMinor
}
