// Package verify confirms an installed binary actually runs.
package verify

import (
	"fmt"
	"os"
	"os/exec"
)

// Verifier runs the installed binary's version entry point. The runner is
// injectable so tests needn't assemble a real executable.
type Verifier struct {
	run func(path string, args ...string) error
}

// New creates a verifier that executes the binary.
func New() *Verifier {
	return &Verifier{
		run: func(path string, args ...string) error {
			return exec.Command(path, args...).Run()
		},
	}
}

// NewWithRunner creates a verifier with an injected runner (for tests).
func NewWithRunner(run func(string, ...string) error) *Verifier {
	return &Verifier{run: run}
}

// Check invokes `path --version` and reports the exact path on any failure
// so the user can diagnose permission or corruption problems themselves.
func (v *Verifier) Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("installed binary missing at %s: %w", path, err)
	}

	if err := v.run(path, "--version"); err != nil {
		return fmt.Errorf("verification failed for %s: %w", path, err)
	}

	return nil
}
