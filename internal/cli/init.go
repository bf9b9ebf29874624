package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/internal/descriptor"
	"github.com/modu-ai/shed/pkg/models"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new environment descriptor",
	Long: `Create a shed.yaml in the project root. Interactively prompts for
platform, toolchain channel, packages, and hook toggles; use
--non-interactive to accept flags and defaults instead.

Examples:
  shed init                          Interactive wizard
  shed init --non-interactive        Defaults for the host platform
  shed init --platform linux-x86_64 --channel nightly --version 2024-06-01`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("input", "pkgs", "Name of the primary package input")
	initCmd.Flags().String("input-url", "https://github.com/NixOS/nixpkgs", "Source URL of the primary input")
	initCmd.Flags().String("platform", "", "Target platform (default: host platform)")
	initCmd.Flags().String("channel", "", "Toolchain channel: stable, beta, or nightly")
	initCmd.Flags().String("toolchain-version", "", "Toolchain version date (nightly channel)")
	initCmd.Flags().StringSlice("package", nil, "Package to include (repeatable)")
	initCmd.Flags().Bool("non-interactive", false, "Skip interactive wizard; use flags and defaults")
	initCmd.Flags().Bool("force", false, "Overwrite an existing descriptor")
}

// initAnswers collects everything the wizard or the flags decide.
type initAnswers struct {
	inputName string
	inputURL  string
	platform  string
	channel   string
	version   string
	packages  []string
	hooks     []string
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	path := filepath.Join(root, defs.DescriptorYAML)
	if _, err := os.Stat(path); err == nil && !getBoolFlag(cmd, "force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", defs.DescriptorYAML)
	}

	ans := answersFromFlags(cmd)

	interactive := !getBoolFlag(cmd, "non-interactive") && !deps.Headless.IsHeadless()
	if interactive {
		if err := runInitWizard(&ans); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return fmt.Errorf("init aborted")
			}
			return err
		}
	}

	d, err := buildDescriptor(ans)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	if err := descriptor.WriteFile(path, d); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s (platform %s, %s toolchain)\n",
		deps.Theme.Success.Render("✓"), path, d.Platform, d.Toolchain.Channel)
	return nil
}

func answersFromFlags(cmd *cobra.Command) initAnswers {
	ans := initAnswers{
		inputName: getStringFlag(cmd, "input"),
		inputURL:  getStringFlag(cmd, "input-url"),
		platform:  getStringFlag(cmd, "platform"),
		channel:   getStringFlag(cmd, "channel"),
		version:   getStringFlag(cmd, "toolchain-version"),
	}
	if pkgs, err := cmd.Flags().GetStringSlice("package"); err == nil {
		ans.packages = pkgs
	}
	if ans.platform == "" {
		ans.platform = string(descriptor.DetectPlatform())
	}
	if ans.channel == "" {
		ans.channel = string(descriptor.DefaultChannel)
	}
	return ans
}

// runInitWizard fills the answers through an interactive form. Flag
// values become the preselected defaults.
func runInitWizard(ans *initAnswers) error {
	platformOpts := make([]huh.Option[string], 0, len(models.SupportedPlatforms()))
	for _, p := range models.SupportedPlatforms() {
		platformOpts = append(platformOpts, huh.NewOption(string(p), string(p)))
	}

	channelOpts := make([]huh.Option[string], 0, len(models.ValidChannels()))
	for _, c := range models.ValidChannels() {
		channelOpts = append(channelOpts, huh.NewOption(string(c), string(c)))
	}

	hookOpts := make([]huh.Option[string], 0, len(models.KnownHooks()))
	for _, h := range models.KnownHooks() {
		hookOpts = append(hookOpts, huh.NewOption(string(h), string(h)))
	}

	packages := strings.Join(ans.packages, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Target platform").
				Options(platformOpts...).
				Value(&ans.platform),
			huh.NewSelect[string]().
				Title("Toolchain channel").
				Options(channelOpts...).
				Value(&ans.channel),
			huh.NewInput().
				Title("Toolchain version").
				Description("Date for nightly channels, empty otherwise").
				Placeholder("2024-06-01").
				Value(&ans.version),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Packages").
				Description("Comma-separated package names").
				Placeholder("just, direnv").
				Value(&packages),
			huh.NewMultiSelect[string]().
				Title("Pre-commit hooks").
				Options(hookOpts...).
				Value(&ans.hooks),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	ans.packages = splitList(packages)
	return nil
}

// buildDescriptor turns the answers into a validated descriptor.
func buildDescriptor(ans initAnswers) (*descriptor.Descriptor, error) {
	b := descriptor.NewBuilder()

	if err := b.DeclareInput(ans.inputName, models.SourceLocator{
		URL: ans.inputURL,
		Ref: descriptor.DefaultRef,
	}); err != nil {
		return nil, err
	}
	if err := b.SelectPlatform(models.Platform(ans.platform)); err != nil {
		return nil, err
	}
	if err := b.ConfigureToolchain(ans.inputName, models.ToolchainChannel(ans.channel), ans.version, nil); err != nil {
		return nil, err
	}
	b.DeclarePackages(ans.packages...)

	toggles := make(map[models.HookName]bool, len(models.KnownHooks()))
	for _, h := range models.KnownHooks() {
		toggles[h] = false
	}
	for _, h := range ans.hooks {
		toggles[models.HookName(h)] = true
	}
	if err := b.SetHooks(toggles); err != nil {
		return nil, err
	}

	return b.Build()
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
