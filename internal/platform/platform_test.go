package platform

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	tgt := Detect()

	if tgt.OS != runtime.GOOS {
		t.Errorf("OS = %s, want %s", tgt.OS, runtime.GOOS)
	}
	if tgt.Arch != runtime.GOARCH {
		t.Errorf("Arch = %s, want %s", tgt.Arch, runtime.GOARCH)
	}
}

func TestResolveSupportedPairs(t *testing.T) {
	tests := []struct {
		name string
		tgt  Target
		want string
	}{
		{
			name: "darwin arm64",
			tgt:  Target{OS: "darwin", Arch: "arm64"},
			want: "bugster-macos-arm64.zip",
		},
		{
			name: "darwin amd64",
			tgt:  Target{OS: "darwin", Arch: "amd64"},
			want: "bugster-macos-x86_64.zip",
		},
		{
			name: "linux amd64",
			tgt:  Target{OS: "linux", Arch: "amd64"},
			want: "bugster-linux.zip",
		},
		{
			name: "linux arm64",
			tgt:  Target{OS: "linux", Arch: "arm64"},
			want: "bugster-linux-arm64.zip",
		},
		{
			name: "windows amd64",
			tgt:  Target{OS: "windows", Arch: "amd64"},
			want: "bugster-windows.exe.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := Resolve(tt.tgt)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if asset.Name != tt.want {
				t.Errorf("asset name = %s, want %s", asset.Name, tt.want)
			}
			if asset.ArchWarned {
				t.Error("ArchWarned = true for a supported pair")
			}
		})
	}
}

func TestResolveArchFallback(t *testing.T) {
	tests := []struct {
		name     string
		tgt      Target
		wantName string
		wantArch string
	}{
		{
			name:     "unknown darwin arch falls back to arm64",
			tgt:      Target{OS: "darwin", Arch: "386"},
			wantName: "bugster-macos-arm64.zip",
			wantArch: "arm64",
		},
		{
			name:     "unknown linux arch falls back to amd64",
			tgt:      Target{OS: "linux", Arch: "riscv64"},
			wantName: "bugster-linux.zip",
			wantArch: "amd64",
		},
		{
			name:     "windows arm64 falls back to amd64",
			tgt:      Target{OS: "windows", Arch: "arm64"},
			wantName: "bugster-windows.exe.zip",
			wantArch: "amd64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset, err := Resolve(tt.tgt)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !asset.ArchWarned {
				t.Error("ArchWarned = false, want true")
			}
			if asset.Name != tt.wantName {
				t.Errorf("asset name = %s, want %s", asset.Name, tt.wantName)
			}
			if asset.Target.Arch != tt.wantArch {
				t.Errorf("resolved arch = %s, want %s", asset.Target.Arch, tt.wantArch)
			}
		})
	}
}

func TestResolveUnsupportedOS(t *testing.T) {
	tests := []struct {
		name string
		tgt  Target
	}{
		{name: "freebsd", tgt: Target{OS: "freebsd", Arch: "amd64"}},
		{name: "plan9", tgt: Target{OS: "plan9", Arch: "386"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.tgt); err == nil {
				t.Error("Resolve() error = nil, want unsupported platform error")
			}
		})
	}
}

func TestExecutableName(t *testing.T) {
	if got := ExecutableName("windows"); got != "bugster.exe" {
		t.Errorf("ExecutableName(windows) = %s, want bugster.exe", got)
	}
	if got := ExecutableName("linux"); got != "bugster" {
		t.Errorf("ExecutableName(linux) = %s, want bugster", got)
	}
}
