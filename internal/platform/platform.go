// Package platform maps the running OS and architecture to a release asset.
package platform

import (
	"fmt"
	"runtime"
)

// ExecName is the name of the product executable inside a release archive.
const ExecName = "bugster"

// Target describes the system an asset is selected for.
type Target struct {
	OS   string // darwin, linux, windows
	Arch string // amd64, arm64
}

// Detect returns the current platform target.
func Detect() Target {
	return Target{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// fallbackArch is the most common architecture per supported OS, used when
// the detected architecture has no dedicated asset. The resulting artifact
// may not run on the host; Resolve surfaces a warning for that case.
var fallbackArch = map[string]string{
	"darwin":  "arm64",
	"linux":   "amd64",
	"windows": "amd64",
}

// assetNames maps every supported (OS, arch) pair to exactly one asset.
var assetNames = map[Target]string{
	{OS: "darwin", Arch: "arm64"}:  "bugster-macos-arm64.zip",
	{OS: "darwin", Arch: "amd64"}:  "bugster-macos-x86_64.zip",
	{OS: "linux", Arch: "amd64"}:   "bugster-linux.zip",
	{OS: "linux", Arch: "arm64"}:   "bugster-linux-arm64.zip",
	{OS: "windows", Arch: "amd64"}: "bugster-windows.exe.zip",
}

// Asset holds the resolved artifact name for a target.
type Asset struct {
	Name       string
	Target     Target
	ArchWarned bool // true when an unrecognized arch fell back to the default
}

// Resolve returns the release asset for the target. An unsupported OS is an
// error; an unknown architecture inside a supported OS falls back to that
// OS's most common variant and sets ArchWarned.
func Resolve(t Target) (*Asset, error) {
	if name, ok := assetNames[t]; ok {
		return &Asset{Name: name, Target: t}, nil
	}

	fallback, ok := fallbackArch[t.OS]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s/%s", t.OS, t.Arch)
	}

	resolved := Target{OS: t.OS, Arch: fallback}
	return &Asset{
		Name:       assetNames[resolved],
		Target:     resolved,
		ArchWarned: true,
	}, nil
}

// ExecutableName returns the product binary name inside the archive for an OS.
func ExecutableName(os string) string {
	if os == "windows" {
		return ExecName + ".exe"
	}
	return ExecName
}
