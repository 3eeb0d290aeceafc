package shellcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		shellEnv string
		want     string
		wantOK   bool
	}{
		{name: "zsh", goos: "darwin", shellEnv: "/bin/zsh", want: ".zshrc", wantOK: true},
		{name: "bash", goos: "linux", shellEnv: "/usr/bin/bash", want: ".bashrc", wantOK: true},
		{name: "fish falls back to profile", goos: "linux", shellEnv: "/usr/bin/fish", want: ".profile", wantOK: true},
		{name: "empty shell falls back to profile", goos: "linux", shellEnv: "", want: ".profile", wantOK: true},
		{name: "windows has no config file", goos: "windows", shellEnv: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := ResolveConfigPath(tt.goos, tt.shellEnv, "/home/user")
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && filepath.Base(path) != tt.want {
				t.Errorf("config path = %s, want basename %s", path, tt.want)
			}
		})
	}
}

func TestApplyAppendsOnce(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, ".bashrc")
	if err := os.WriteFile(rc, []byte("alias ll='ls -l'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	installDir := "/home/user/.local/bin"

	first, err := Apply(rc, installDir)
	if err != nil {
		t.Fatalf("first Apply() error = %v", err)
	}
	if !first.Applied || first.AlreadyPresent {
		t.Errorf("first run: Applied = %v, AlreadyPresent = %v", first.Applied, first.AlreadyPresent)
	}
	if first.BackupPath == "" {
		t.Error("first run should back up the existing file")
	}
	if _, err := os.Stat(first.BackupPath); err != nil {
		t.Errorf("backup file missing: %v", err)
	}

	second, err := Apply(rc, installDir)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}
	if second.Applied || !second.AlreadyPresent {
		t.Errorf("second run: Applied = %v, AlreadyPresent = %v", second.Applied, second.AlreadyPresent)
	}

	content, err := os.ReadFile(rc)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(content), Marker); got != 1 {
		t.Errorf("marker appears %d times, want 1", got)
	}
	if got := strings.Count(string(content), ExportLine(installDir)); got != 1 {
		t.Errorf("export line appears %d times, want 1", got)
	}
	if !strings.Contains(string(content), "alias ll") {
		t.Error("previous content was lost")
	}
}

func TestApplyCreatesMissingFile(t *testing.T) {
	rc := filepath.Join(t.TempDir(), ".profile")

	result, err := Apply(rc, "/home/user/.local/bin")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !result.Applied {
		t.Error("Applied = false, want true")
	}
	if result.BackupPath != "" {
		t.Error("no backup expected when the file did not exist")
	}

	content, err := os.ReadFile(rc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), Marker) {
		t.Error("marker missing from created file")
	}
}

func TestApplyDetectsExistingPathReference(t *testing.T) {
	dir := t.TempDir()
	rc := filepath.Join(dir, ".zshrc")
	installDir := "/home/user/.local/bin"

	// User already exports the directory themselves, without our marker.
	if err := os.WriteFile(rc, []byte("export PATH=\"$PATH:"+installDir+"\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := Apply(rc, installDir)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !result.AlreadyPresent {
		t.Error("AlreadyPresent = false, want true for existing PATH reference")
	}
}

func TestManualInstructions(t *testing.T) {
	if got := ManualInstructions("windows", `C:\Users\u\bin`); !strings.Contains(got, "Environment Variables") {
		t.Errorf("windows instructions = %q", got)
	}
	if got := ManualInstructions("linux", "/home/u/bin"); !strings.Contains(got, ExportLine("/home/u/bin")) {
		t.Errorf("unix instructions = %q", got)
	}
}
