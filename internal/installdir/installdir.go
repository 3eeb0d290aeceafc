// Package installdir manages the user-local directory the product binary
// is installed into.
package installdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Target is where the product binary ends up.
type Target struct {
	Dir      string // user-local bin directory, created on demand
	ExecName string // installed binary name, e.g. "bugster"
}

// Default returns the conventional install target for an OS.
func Default(goos string) (Target, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Target{}, fmt.Errorf("failed to determine home directory: %w", err)
	}

	if goos == "windows" {
		dir := os.Getenv("LOCALAPPDATA")
		if dir == "" {
			dir = filepath.Join(home, "AppData", "Local")
		}
		return Target{
			Dir:      filepath.Join(dir, "Programs", "bugster"),
			ExecName: "bugster.exe",
		}, nil
	}

	return Target{
		Dir:      filepath.Join(home, ".local", "bin"),
		ExecName: "bugster",
	}, nil
}

// Path returns the final executable path.
func (t Target) Path() string {
	return filepath.Join(t.Dir, t.ExecName)
}

// Install copies src into the target directory, overwriting any prior
// installed copy. Re-running against the same target is idempotent.
func (t Target) Install(src string) error {
	if err := os.MkdirAll(t.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create install directory %s: %w", t.Dir, err)
	}

	// Write to a scratch name first so an interrupted copy never leaves a
	// truncated binary at the final path.
	tmp := t.Path() + ".partial"
	if err := copyFile(src, tmp); err != nil {
		return err
	}

	if err := os.Rename(tmp, t.Path()); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to install binary: %w", err)
	}

	if err := os.Chmod(t.Path(), 0755); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", t.Path(), err)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		os.Remove(dst)
		return fmt.Errorf("failed to copy binary: %w", err)
	}

	return nil
}
