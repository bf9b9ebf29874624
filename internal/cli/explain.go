package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/modu-ai/shed/internal/descriptor"
	"github.com/modu-ai/shed/internal/resolve"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Describe the environment in human terms",
	Long: `Render a readable summary of the descriptor and its resolved plan:
where each input points, what the toolchain overlay contributes, and
which hooks guard commits.`,
	Args: cobra.NoArgs,
	RunE: runExplain,
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

func runExplain(cmd *cobra.Command, _ []string) error {
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

	md := explainMarkdown(d, plan)

	// Plain markdown when there is no terminal to style for.
	if deps.Headless.IsHeadless() || deps.Theme.NoColor {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		fmt.Fprint(cmd.OutOrStdout(), md)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// explainMarkdown builds the markdown summary handed to the renderer.
func explainMarkdown(d *descriptor.Descriptor, plan *resolve.ShellPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Environment for %s\n\n", d.Platform)

	b.WriteString("## Inputs\n\n")
	for _, ref := range d.Inputs.Refs() {
		pin := "unpinned"
		if ref.Locator.IsPinned() {
			pin = "pinned to " + ref.Locator.Rev
		} else if ref.Locator.Ref != "" {
			pin = "tracking " + ref.Locator.Ref
		}
		fmt.Fprintf(&b, "- **%s**: %s (%s)\n", ref.Name, ref.Locator.URL, pin)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Toolchain\n\n")
	fmt.Fprintf(&b, "The `%s` channel toolchain comes from input `%s`", d.Toolchain.Channel, d.Toolchain.Input)
	if d.Toolchain.Version != "" {
		fmt.Fprintf(&b, ", version `%s`", d.Toolchain.Version)
	}
	b.WriteString(".\n")
	if len(d.Toolchain.Extensions) > 0 {
		fmt.Fprintf(&b, "Extensions: %s.\n", strings.Join(d.Toolchain.Extensions, ", "))
	}
	b.WriteString("\n")

	b.WriteString("## Tools on PATH\n\n")
	for _, tool := range plan.Tools {
		fmt.Fprintf(&b, "- `%s` (%s, %s)\n", tool.Name, tool.Kind, tool.Version)
	}
	b.WriteString("\n")

	if hooks := d.EnabledHooks(); len(hooks) > 0 {
		b.WriteString("## Pre-commit hooks\n\n")
		for _, h := range hooks {
			fmt.Fprintf(&b, "- %s\n", h)
		}
		b.WriteString("\n")
	}

	return b.String()
}
