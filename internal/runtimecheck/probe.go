package runtimecheck

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when no installed candidate meets the floor.
var ErrNotFound = errors.New("no satisfying runtime found")

// Probe locates runtimes on the system. Lookup and version execution are
// injectable so tests never shell out.
type Probe struct {
	lookPath    func(cmd string) (string, error)
	versionOf   func(path string) (string, error)
}

// NewProbe creates a probe backed by the real PATH and interpreters.
func NewProbe() *Probe {
	return &Probe{
		lookPath: exec.LookPath,
		versionOf: func(path string) (string, error) {
			out, err := exec.Command(path, "--version").CombinedOutput()
			return strings.TrimSpace(string(out)), err
		},
	}
}

// NewProbeWithFuncs creates a probe with injected lookup functions (for tests).
func NewProbeWithFuncs(lookPath func(string) (string, error), versionOf func(string) (string, error)) *Probe {
	return &Probe{lookPath: lookPath, versionOf: versionOf}
}

// Find returns the first candidate satisfying the requirement, or
// ErrNotFound when none does.
func (p *Probe) Find(req Requirement) (*Runtime, error) {
	for _, cmd := range req.Candidates {
		path, err := p.lookPath(cmd)
		if err != nil {
			continue
		}

		out, err := p.versionOf(path)
		if err != nil {
			continue
		}

		major, minor, version, err := parseVersionOutput(out)
		if err != nil {
			continue
		}

		if req.Satisfies(major, minor) {
			return &Runtime{Command: cmd, Path: path, Version: version}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s >= %s", ErrNotFound, req.Name, req.Floor())
}
