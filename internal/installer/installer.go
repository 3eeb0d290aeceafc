// Package installer runs the end-to-end Bugster CLI installation pipeline.
package installer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Bugsterapp/bugster-installer/internal/config"
	"github.com/Bugsterapp/bugster-installer/internal/fetch"
	"github.com/Bugsterapp/bugster-installer/internal/installdir"
	"github.com/Bugsterapp/bugster-installer/internal/output"
	"github.com/Bugsterapp/bugster-installer/internal/platform"
	"github.com/Bugsterapp/bugster-installer/internal/registry"
	"github.com/Bugsterapp/bugster-installer/internal/runtimecheck"
	"github.com/Bugsterapp/bugster-installer/internal/semver"
	"github.com/Bugsterapp/bugster-installer/internal/shellcfg"
	"github.com/Bugsterapp/bugster-installer/internal/verify"
)

const (
	registryOwner = "Bugsterapp"
	registryRepo  = "bugster-cli"

	// fallbackVersion is the last-known-good release used when the latest
	// tag cannot be resolved. Bumped on each release.
	fallbackVersion = "v0.1.0"

	// staleTempAge is how old an abandoned temp directory must be before a
	// later run sweeps it.
	staleTempAge = 24 * time.Hour
)

// Options configures one installer run. Zero-valued fields fall back to
// production defaults; tests inject their own collaborators.
type Options struct {
	VersionToken string // "latest" or a strict release tag
	SkipVerify   bool   // upgrade-in-progress mode, skip post-install check

	Config  *config.Config
	Console *output.Console
	Confirm func(question string) bool

	Target       *platform.Target    // platform override
	Install      *installdir.Target  // install dir override
	ShellConfig  string              // startup file override
	Registry     *registry.Client
	Fetcher      *fetch.Fetcher
	Verifier     *verify.Verifier
	Provisioner  *runtimecheck.Provisioner
	Requirements []runtimecheck.Requirement // nil means the product defaults
}

// Report is the outcome of a successful run.
type Report struct {
	Version        string               `json:"version" yaml:"version"`
	Asset          string               `json:"asset" yaml:"asset"`
	Path           string               `json:"path" yaml:"path"`
	Runtimes       []runtimecheck.Runtime `json:"runtimes,omitempty" yaml:"runtimes,omitempty"`
	ShellConfig    *shellcfg.Result     `json:"shell_config,omitempty" yaml:"shell_config,omitempty"`
	Verified       bool                 `json:"verified" yaml:"verified"`
	DegradedLatest bool                 `json:"degraded_latest,omitempty" yaml:"degraded_latest,omitempty"`
}

// String renders the text-format report.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Bugster CLI %s installed to %s\n", r.Version, r.Path)
	for _, rt := range r.Runtimes {
		fmt.Fprintf(&b, "  runtime: %s %s (%s)\n", rt.Command, rt.Version, rt.Path)
	}
	if r.ShellConfig != nil {
		switch {
		case r.ShellConfig.Applied:
			fmt.Fprintf(&b, "  PATH export added to %s\n", r.ShellConfig.ConfigPath)
		case r.ShellConfig.AlreadyPresent:
			fmt.Fprintf(&b, "  PATH already configured in %s\n", r.ShellConfig.ConfigPath)
		}
	}
	if !r.Verified {
		b.WriteString("  verification skipped\n")
	}
	if r.DegradedLatest {
		fmt.Fprintf(&b, "  note: latest-version lookup failed, installed fallback %s\n", r.Version)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Installer is the sequential install pipeline.
type Installer struct {
	opts Options
}

// New fills defaults and returns a runnable installer.
func New(opts Options) *Installer {
	if opts.VersionToken == "" {
		opts.VersionToken = semver.Latest
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
	}
	if opts.Console == nil {
		opts.Console = output.NewConsole(os.Stderr)
	}
	if opts.Confirm == nil {
		opts.Confirm = func(string) bool { return true }
	}
	if opts.Registry == nil {
		opts.Registry = registry.NewClient(registryOwner, registryRepo)
		if opts.Config.APIBaseURL != "" {
			opts.Registry = opts.Registry.WithBaseURL(opts.Config.APIBaseURL)
		}
		if opts.Config.GitHubToken != "" {
			opts.Registry = opts.Registry.WithToken(opts.Config.GitHubToken)
		}
	}
	if opts.Fetcher == nil {
		opts.Fetcher = fetch.New()
	}
	if opts.Verifier == nil {
		opts.Verifier = verify.New()
	}
	return &Installer{opts: opts}
}

// Run executes the pipeline: platform detection, runtime provisioning,
// version resolution, artifact fetch, install, PATH registration, and
// verification. Every stage gates the next; the first error is terminal.
func (in *Installer) Run() (*Report, error) {
	console := in.opts.Console

	// Previous interrupted runs never clean up their scratch space.
	fetch.SweepStale(os.TempDir(), staleTempAge)

	// Platform detection happens before any network access.
	target := platform.Detect()
	if in.opts.Target != nil {
		target = *in.opts.Target
	}
	asset, err := platform.Resolve(target)
	if err != nil {
		return nil, err
	}
	if asset.ArchWarned {
		console.Warn("no dedicated build for %s/%s, using the %s build; it may not run on this machine",
			target.OS, target.Arch, asset.Target.Arch)
	}

	report := &Report{Asset: asset.Name}

	// Runtime floors.
	requirements := in.opts.Requirements
	if requirements == nil {
		requirements = []runtimecheck.Requirement{runtimecheck.Python, runtimecheck.Node}
	}
	if len(requirements) > 0 {
		provisioner := in.opts.Provisioner
		if provisioner == nil {
			provisioner = runtimecheck.NewProvisioner(
				runtimecheck.NewProbe(),
				runtimecheck.FamilyFor(target.OS),
				in.opts.Confirm,
				console,
			)
		}
		for _, req := range requirements {
			console.Step("Checking for %s >= %s...", req.Name, req.Floor())
			rt, err := provisioner.Ensure(req)
			if err != nil {
				return nil, err
			}
			report.Runtimes = append(report.Runtimes, *rt)
		}
	}

	// Version resolution.
	version, degraded, err := in.resolveVersion()
	if err != nil {
		return nil, err
	}
	report.Version = version
	report.DegradedLatest = degraded

	// The tag must exist before anything is downloaded.
	release, err := in.opts.Registry.ReleaseByTag(version)
	if err != nil {
		if errors.Is(err, registry.ErrTagNotFound) {
			return nil, fmt.Errorf("version %s not found in the release registry", version)
		}
		return nil, fmt.Errorf("failed to look up release %s: %w", version, err)
	}

	assetURL, ok := release.AssetURL(asset.Name)
	if !ok {
		return nil, fmt.Errorf("release %s has no asset %s", version, asset.Name)
	}

	// Exclusive scratch space, removed on every exit path.
	tempDir, err := fetch.NewTempDir()
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tempDir)

	console.Step("Downloading Bugster CLI %s for %s/%s...", version, asset.Target.OS, asset.Target.Arch)
	execPath, err := in.opts.Fetcher.FetchExecutable(assetURL, tempDir, platform.ExecutableName(target.OS))
	if err != nil {
		return nil, err
	}

	// Install.
	install := in.opts.Install
	if install == nil {
		tgt, err := installdir.Default(target.OS)
		if err != nil {
			return nil, err
		}
		if in.opts.Config.InstallDir != "" {
			tgt.Dir = in.opts.Config.InstallDir
		}
		install = &tgt
	}
	console.Step("Installing to %s...", install.Path())
	if err := install.Install(execPath); err != nil {
		return nil, err
	}
	report.Path = install.Path()

	// PATH registration.
	configPath := in.opts.ShellConfig
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine home directory: %w", err)
		}
		var ok bool
		configPath, ok = shellcfg.ResolveConfigPath(target.OS, os.Getenv("SHELL"), home)
		if !ok {
			console.Info("%s", shellcfg.ManualInstructions(target.OS, install.Dir))
			configPath = ""
		}
	}
	if configPath != "" {
		patch, err := shellcfg.Apply(configPath, install.Dir)
		if err != nil {
			return nil, err
		}
		report.ShellConfig = patch
		if patch.Applied {
			console.Success("Added %s to PATH in %s", install.Dir, patch.ConfigPath)
		}
	}

	// Verification, skippable during in-place upgrades where the old
	// process may still be resident.
	if in.opts.SkipVerify {
		console.Info("Skipping post-install verification")
	} else {
		console.Step("Verifying installation...")
		if err := in.opts.Verifier.Check(install.Path()); err != nil {
			return nil, err
		}
		report.Verified = true
		console.Success("Bugster CLI %s installed", version)
	}

	return report, nil
}

// resolveVersion turns the version token into a concrete release tag.
// A failed latest lookup degrades to the last-known-good fallback so
// automated installs keep working, with a visible warning.
func (in *Installer) resolveVersion() (version string, degraded bool, err error) {
	token := in.opts.VersionToken
	if token != semver.Latest {
		if err := semver.ValidateToken(token); err != nil {
			return "", false, err
		}
		return token, false, nil
	}

	tag, err := in.opts.Registry.LatestTag()
	if err == nil {
		return tag, false, nil
	}

	fallback := fallbackVersion
	if in.opts.Config.FallbackVersion != "" {
		fallback = in.opts.Config.FallbackVersion
	}
	in.opts.Console.Warn("could not resolve the latest version (%v); falling back to %s", err, fallback)
	return fallback, true, nil
}
