package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/hookrun"
	"github.com/modu-ai/shed/pkg/models"
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage and run pre-commit hooks",
}

var hooksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recognized hooks and their toggle state",
	Args:  cobra.NoArgs,
	RunE:  runHooksList,
}

var hooksRunCmd = &cobra.Command{
	Use:   "run [files...]",
	Short: "Run the enabled hooks over a set of files",
	Long: `Run every hook enabled in the descriptor, in sorted name order.
Files are taken from the arguments, or from the git staging area with
--staged; relative paths resolve against the project root. The run
stops at the first failing hook.`,
	RunE: runHooksRun,
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the git pre-commit shim",
	Args:  cobra.NoArgs,
	RunE:  runHooksInstall,
}

func init() {
	rootCmd.AddCommand(hooksCmd)
	hooksCmd.AddCommand(hooksListCmd)
	hooksCmd.AddCommand(hooksRunCmd)
	hooksCmd.AddCommand(hooksInstallCmd)

	hooksRunCmd.Flags().Bool("staged", false, "Run over files staged in git")
}

func runHooksList(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	out := cmd.OutOrStdout()
	for _, name := range models.KnownHooks() {
		state := deps.Theme.Muted.Render("disabled")
		if d.Hooks[name] {
			state = deps.Theme.Success.Render("enabled")
		}
		fmt.Fprintf(out, "  %-12s %s\n", name, state)
	}
	return nil
}

func runHooksRun(cmd *cobra.Command, args []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	hooks := d.EnabledHooks()
	if len(hooks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no hooks enabled")
		return nil
	}

	files := args
	if getBoolFlag(cmd, "staged") {
		files, err = stagedFiles(root)
		if err != nil {
			return err
		}
	}

	results, err := deps.Hooks.Run(cmd.Context(), root, hooks, files)
	printResults(cmd, results)
	if err != nil {
		return err
	}
	if hookrun.Failed(results) {
		return fmt.Errorf("hooks failed")
	}
	return nil
}

func runHooksInstall(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	path, err := hookrun.InstallPreCommit(root)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "installed pre-commit hook at %s\n", path)
	return nil
}

// printResults writes one status line per hook result, plus captured
// tool output for failures.
func printResults(cmd *cobra.Command, results []hookrun.Result) {
	out := cmd.OutOrStdout()
	for _, res := range results {
		switch {
		case res.Skipped:
			fmt.Fprintf(out, "  %s %-12s skipped\n", deps.Theme.Muted.Render("-"), res.Hook)
		case res.Success:
			fmt.Fprintf(out, "  %s %-12s %s\n", deps.Theme.Success.Render("✓"), res.Hook,
				res.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(out, "  %s %-12s failed (exit %d)\n", deps.Theme.Error.Render("✗"),
				res.Hook, res.ExitCode)
			if res.Output != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimRight(res.Output, "\n"))
			}
		}
	}
}

// stagedFiles lists files staged for the next commit.
func stagedFiles(projectRoot string) ([]string, error) {
	gitCmd := exec.Command("git", "diff", "--name-only", "--cached", "--diff-filter=ACMR")
	gitCmd.Dir = projectRoot
	out, err := gitCmd.Output()
	if err != nil {
		return nil, fmt.Errorf("list staged files: %w", err)
	}

	var files []string
	for _, line := range bytes.Split(out, []byte("\n")) {
		if name := strings.TrimSpace(string(line)); name != "" {
			files = append(files, name)
		}
	}
	return files, nil
}
