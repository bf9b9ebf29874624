package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "shed",
	Short: "shed: declarative, reproducible development shells",
	Long: `shed manages a declarative development environment descriptor.

A shed.yaml file pins external package sources, selects a target
platform and a toolchain, lists extra packages, and toggles pre-commit
hooks. shed validates the descriptor, resolves it into a deterministic
shell plan, locks input revisions, and runs the configured hooks.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("shed %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().StringP("directory", "C", "", "Project root directory (default: current directory)")
}

// projectRoot resolves the project root from the --directory flag,
// falling back to the working directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	dir := getStringFlag(cmd, "directory")
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("resolve project root: %w", err)
		}
		return abs, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return cwd, nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
