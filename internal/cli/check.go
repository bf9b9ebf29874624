package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/descriptor"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the environment descriptor",
	Long: `Load shed.yaml and run full validation: referential integrity of
inputs, platform support, toolchain channel, and hook names. Exits
non-zero if the descriptor is invalid.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success.Render("✓")+" "+deps.Descriptor.Path()+" is valid")
	fmt.Fprintf(cmd.OutOrStdout(), "  platform  %s\n", d.Platform)
	fmt.Fprintf(cmd.OutOrStdout(), "  inputs    %d\n", d.Inputs.Len())
	fmt.Fprintf(cmd.OutOrStdout(), "  packages  %d\n", len(d.Packages))
	fmt.Fprintf(cmd.OutOrStdout(), "  hooks     %d enabled\n", len(d.EnabledHooks()))
	return nil
}

// printDescriptorError writes load or validation failures to stderr,
// one line per field when the error carries per-field detail.
func printDescriptorError(cmd *cobra.Command, err error) {
	out := cmd.ErrOrStderr()
	mark := deps.Theme.Error.Render("✗")

	var verrs *descriptor.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs.Errors {
			fmt.Fprintf(out, "%s %s\n", mark, ve.Error())
		}
		return
	}
	fmt.Fprintf(out, "%s %s\n", mark, err)
}
