// Package config handles optional installer configuration file parsing.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds user overrides for installer defaults. Every field is
// optional; the zero value means "use the built-in default".
type Config struct {
	InstallDir      string `toml:"install_dir,omitempty" yaml:"install_dir,omitempty" json:"install_dir,omitempty"`
	GitHubToken     string `toml:"github_token,omitempty" yaml:"github_token,omitempty" json:"github_token,omitempty"`
	APIBaseURL      string `toml:"api_base_url,omitempty" yaml:"api_base_url,omitempty" json:"api_base_url,omitempty"`
	FallbackVersion string `toml:"fallback_version,omitempty" yaml:"fallback_version,omitempty" json:"fallback_version,omitempty"`
}

// candidateNames are probed in order inside the config directory.
var candidateNames = []string{
	"install.toml",
	"install.yaml",
	"install.yml",
	"install.json",
}

// Dir returns the installer config directory, honoring XDG_CONFIG_HOME.
func Dir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "bugster"), nil
}

// LoadDefault loads the config file from the default location. A missing
// file is not an error; the zero config is returned.
func LoadDefault() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFromDir(dir)
}

// LoadFromDir probes the candidate file names in dir and parses the first
// one that exists.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return Load(path)
	}
	return &Config{}, nil
}

// Load parses a config file at an explicit path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parse(path, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
