package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bugsterapp/bugster-installer/internal/config"
	"github.com/Bugsterapp/bugster-installer/internal/installer"
	"github.com/Bugsterapp/bugster-installer/internal/interactive"
	"github.com/Bugsterapp/bugster-installer/internal/output"
	"github.com/Bugsterapp/bugster-installer/internal/semver"
)

var (
	versionToken string
	assumeYes    bool
	outputFormat string
	skipVerify   bool
)

func Execute(version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:   "bugster-install",
		Short: "Install the Bugster CLI from GitHub releases",
		Long: fmt.Sprintf(`bugster-install %s (%s, built %s)

Downloads a Bugster CLI release for this platform, provisions the language
runtimes it needs, installs the binary to a user-local directory, and adds
that directory to your shell PATH.`, version, commit, date),
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall()
		},
	}

	rootCmd.Flags().StringVarP(&versionToken, "version", "v", semver.Latest,
		`release to install: "latest", "vX.Y.Z" or "vX.Y.Z-{alpha|beta|rc}.N"`)
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "non-interactive mode, auto-confirm prompts")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "report format: text, json, yaml")
	rootCmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "skip post-install verification (in-place upgrade mode)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}

func runInstall() error {
	// Input validation happens before any side effect.
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if err := semver.ValidateToken(versionToken); err != nil {
		return err
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		return err
	}
	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}

	confirm := interactive.ConfirmFunc(interactive.AlwaysYes)
	if !assumeYes && interactive.IsTerminal() {
		confirm = interactive.NewPrompter().Confirm
	}

	report, err := installer.New(installer.Options{
		VersionToken: versionToken,
		SkipVerify:   skipVerify,
		Config:       cfg,
		Console:      output.NewConsole(os.Stderr),
		Confirm:      confirm,
	}).Run()
	if err != nil {
		return err
	}

	return output.NewWriter(os.Stdout, format).Write(report)
}
