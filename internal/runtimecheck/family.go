package runtimecheck

import "fmt"

// PackageManager describes one way to provision a runtime. The install
// arguments pin the runtime version where the manager supports pinning.
type PackageManager struct {
	Name        string
	installArgs map[string][]string // requirement key -> full argv (after the manager name)
}

// InstallArgs returns the argv for installing the requirement, or an error
// when this manager cannot provision it.
func (pm PackageManager) InstallArgs(req Requirement) ([]string, error) {
	args, ok := pm.installArgs[req.Key]
	if !ok {
		return nil, fmt.Errorf("%s cannot install %s", pm.Name, req.Name)
	}
	return args, nil
}

// Family is the per-OS-family capability set: which package managers exist
// and how each provisions the required runtimes. One value per family
// replaces the per-platform script duplication of the old installers.
type Family struct {
	Name     string
	Managers []PackageManager // probed in order
}

// FamilyFor returns the capability set for an OS.
func FamilyFor(goos string) Family {
	switch goos {
	case "darwin":
		return Family{
			Name: "macos",
			Managers: []PackageManager{
				{
					Name: "brew",
					installArgs: map[string][]string{
						"python": {"install", "python@3.12"},
						"node":   {"install", "node@22"},
					},
				},
			},
		}
	case "windows":
		return Family{
			Name: "windows",
			Managers: []PackageManager{
				{
					Name: "winget",
					installArgs: map[string][]string{
						"python": {"install", "--id", "Python.Python.3.12", "-e", "--silent"},
						"node":   {"install", "--id", "OpenJS.NodeJS.LTS", "-e", "--silent"},
					},
				},
				{
					Name: "choco",
					installArgs: map[string][]string{
						"python": {"install", "-y", "python312"},
						"node":   {"install", "-y", "nodejs-lts"},
					},
				},
			},
		}
	default: // linux and other unixes
		return Family{
			Name: "linux",
			Managers: []PackageManager{
				{
					Name: "apt-get",
					installArgs: map[string][]string{
						"python": {"install", "-y", "python3"},
						"node":   {"install", "-y", "nodejs"},
					},
				},
				{
					Name: "dnf",
					installArgs: map[string][]string{
						"python": {"install", "-y", "python3.12"},
						"node":   {"install", "-y", "nodejs"},
					},
				},
				{
					Name: "yum",
					installArgs: map[string][]string{
						"python": {"install", "-y", "python3"},
						"node":   {"install", "-y", "nodejs"},
					},
				},
			},
		}
	}
}

// DetectPackageManager returns the first manager of the family present on
// PATH.
func (f Family) DetectPackageManager(lookPath func(string) (string, error)) (*PackageManager, error) {
	for i := range f.Managers {
		if _, err := lookPath(f.Managers[i].Name); err == nil {
			return &f.Managers[i], nil
		}
	}
	return nil, fmt.Errorf("no supported package manager found for %s", f.Name)
}
