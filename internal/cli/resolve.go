package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/resolve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the descriptor into a shell plan",
	Long: `Resolve shed.yaml into the deterministic shell plan: pinned sources,
the tool set after the toolchain overlay, PATH layout, and environment
variables. The same descriptor always resolves to the same plan.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().Bool("json", false, "Emit the plan as JSON")
}

func runResolve(cmd *cobra.Command, _ []string) error {
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	d, err := deps.Descriptor.Load(root)
	if err != nil {
		printDescriptorError(cmd, err)
		return err
	}

	sp := deps.Progress.Spinner("resolving " + deps.Descriptor.Path())
	plan, err := resolve.Resolve(d)
	sp.Stop()
	if err != nil {
		return err
	}

	if getBoolFlag(cmd, "json") {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	printPlan(cmd.OutOrStdout(), plan)
	return nil
}

func printPlan(w io.Writer, plan *resolve.ShellPlan) {
	title := deps.Theme.Title.Render

	fmt.Fprintf(w, "%s  %s\n\n", title("platform"), plan.Platform)

	fmt.Fprintln(w, title("sources"))
	for _, src := range plan.Sources {
		pin := src.Locator.Ref
		if src.Locator.IsPinned() {
			pin = src.Locator.Rev
		}
		fmt.Fprintf(w, "  %-14s %s @ %s\n", src.Name, src.Locator.URL, pin)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, title("tools"))
	for _, tool := range plan.Tools {
		fmt.Fprintf(w, "  %-22s %-10s %s\n", tool.Name, tool.Kind, tool.Version)
	}

	if len(plan.Hooks) > 0 {
		names := make([]string, len(plan.Hooks))
		for i, h := range plan.Hooks {
			names[i] = string(h)
		}
		fmt.Fprintf(w, "\n%s  %s\n", title("hooks"), strings.Join(names, ", "))
	}
}
