// Package shellcfg applies the idempotent PATH export to the user's shell
// startup file.
package shellcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Marker guards the appended block so repeated installs never duplicate it.
const Marker = "# Added by bugster-install"

// Result reports what a patch application did, so callers can tell a fresh
// edit from a no-op re-run.
type Result struct {
	ConfigPath     string `json:"config_path" yaml:"config_path"`
	Applied        bool   `json:"applied" yaml:"applied"`
	AlreadyPresent bool   `json:"already_present" yaml:"already_present"`
	BackupPath     string `json:"backup_path,omitempty" yaml:"backup_path,omitempty"`
}

// ResolveConfigPath picks the startup file for the user's interactive shell.
// shellEnv is the value of $SHELL. Windows has no shell startup file to
// patch; callers print manual instructions instead.
func ResolveConfigPath(goos, shellEnv, home string) (string, bool) {
	if goos == "windows" {
		return "", false
	}

	shell := filepath.Base(shellEnv)
	switch shell {
	case "zsh":
		return filepath.Join(home, ".zshrc"), true
	case "bash":
		return filepath.Join(home, ".bashrc"), true
	default:
		return filepath.Join(home, ".profile"), true
	}
}

// ExportLine returns the PATH export appended below the marker.
func ExportLine(installDir string) string {
	return fmt.Sprintf("export PATH=\"$PATH:%s\"", installDir)
}

// Apply appends the marker-guarded PATH export to configPath unless the
// marker or the install directory is already referenced. The previous file
// content is backed up before any write.
func Apply(configPath, installDir string) (*Result, error) {
	result := &Result{ConfigPath: configPath}

	content, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", configPath, err)
	}

	if strings.Contains(string(content), Marker) || strings.Contains(string(content), installDir) {
		result.AlreadyPresent = true
		return result, nil
	}

	if len(content) > 0 {
		backup := fmt.Sprintf("%s.bak.%s", configPath, time.Now().Format("20060102-150405"))
		if err := os.WriteFile(backup, content, 0644); err != nil {
			return nil, fmt.Errorf("failed to back up %s: %w", configPath, err)
		}
		result.BackupPath = backup
	}

	f, err := os.OpenFile(configPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", configPath, err)
	}
	defer f.Close()

	block := fmt.Sprintf("\n%s\n%s\n", Marker, ExportLine(installDir))
	if _, err := f.WriteString(block); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", configPath, err)
	}

	result.Applied = true
	return result, nil
}

// ManualInstructions describes the PATH edit the user must make by hand on
// platforms where the installer does not touch configuration.
func ManualInstructions(goos, installDir string) string {
	if goos == "windows" {
		return fmt.Sprintf("Add %s to your PATH to use 'bugster' from any terminal.\n"+
			"You can do this through System Properties > Advanced > Environment Variables.", installDir)
	}
	return fmt.Sprintf("Add %s to your PATH to use 'bugster' from any terminal:\n  %s",
		installDir, ExportLine(installDir))
}
