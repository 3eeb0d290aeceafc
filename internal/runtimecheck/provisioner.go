package runtimecheck

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/Bugsterapp/bugster-installer/internal/output"
)

// Provisioner finds a satisfying runtime, installing one through the
// family's package manager when the user (or --yes policy) agrees.
type Provisioner struct {
	probe   *Probe
	family  Family
	confirm func(question string) bool
	console *output.Console
	run     func(name string, args ...string) error
}

// NewProvisioner creates a provisioner for the given OS family.
func NewProvisioner(probe *Probe, family Family, confirm func(string) bool, console *output.Console) *Provisioner {
	return &Provisioner{
		probe:   probe,
		family:  family,
		confirm: confirm,
		console: console,
		run: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			out, err := cmd.CombinedOutput()
			if err != nil {
				return fmt.Errorf("%s %v failed: %w\n%s", name, args, err, out)
			}
			return nil
		},
	}
}

// WithRunner replaces the command runner (for tests).
func (p *Provisioner) WithRunner(run func(string, ...string) error) *Provisioner {
	p.run = run
	return p
}

// Ensure returns a runtime satisfying the requirement, provisioning it if
// necessary. Provisioning is attempted exactly once; a package manager that
// ran successfully but did not yield a working runtime is an environment
// problem the installer cannot fix, so that is a hard stop.
func (p *Provisioner) Ensure(req Requirement) (*Runtime, error) {
	rt, err := p.probe.Find(req)
	if err == nil {
		return rt, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	pm, err := p.family.DetectPackageManager(p.probe.lookPath)
	if err != nil {
		return nil, fmt.Errorf("%s >= %s is required but not installed, and %w\n%s",
			req.Name, req.Floor(), err, p.manualInstructions(req))
	}

	args, err := pm.InstallArgs(req)
	if err != nil {
		return nil, err
	}

	question := fmt.Sprintf("%s >= %s is required but not installed. Install it via %s?",
		req.Name, req.Floor(), pm.Name)
	if !p.confirm(question) {
		return nil, fmt.Errorf("%s >= %s is required\n%s", req.Name, req.Floor(), p.manualInstructions(req))
	}

	p.console.Step("Installing %s via %s...", req.Name, pm.Name)
	if err := p.run(pm.Name, args...); err != nil {
		return nil, fmt.Errorf("failed to install %s: %w", req.Name, err)
	}

	rt, err = p.probe.Find(req)
	if err != nil {
		return nil, fmt.Errorf("%s was installed via %s but no candidate satisfies the %s floor; "+
			"check your environment and PATH", req.Name, pm.Name, req.Floor())
	}

	p.console.Success("%s %s available at %s", req.Name, rt.Version, rt.Path)
	return rt, nil
}

// manualInstructions tells the user how to provision the runtime themselves.
func (p *Provisioner) manualInstructions(req Requirement) string {
	switch p.family.Name {
	case "macos":
		return fmt.Sprintf("Install it manually, e.g.: brew install %s", req.Key)
	case "windows":
		return fmt.Sprintf("Install it manually from the official %s download page.", req.Name)
	default:
		return fmt.Sprintf("Install it manually with your distribution's package manager, e.g.: sudo apt-get install %s", req.Key)
	}
}
