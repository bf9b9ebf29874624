package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/resolve"
	"github.com/modu-ai/shed/internal/shellgen"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Print the shell activation script",
	Long: `Resolve the descriptor and print a script that activates the
environment in the current shell: PATH entries for the toolchain and
package bins, plus exported environment variables.

The shell dialect is auto-detected from $SHELL; override with --shell.

  eval "$(shed shell)"`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().String("shell", "", "Shell dialect: bash, zsh, or fish (default: auto-detect)")
}

func runShell(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	plan, err := resolve.Resolve(d)
	if err != nil {
		return err
	}

	shell := shellgen.Detect(os.Getenv("SHELL"))
	if flag := getStringFlag(cmd, "shell"); flag != "" {
		switch shellgen.ShellType(flag) {
		case shellgen.ShellBash, shellgen.ShellZsh, shellgen.ShellFish:
			shell = shellgen.ShellType(flag)
		default:
			return fmt.Errorf("invalid --shell value %q: must be one of: bash, zsh, fish", flag)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), shellgen.Script(plan, shell))
	return nil
}
