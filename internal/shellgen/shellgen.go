// Package shellgen renders a resolved shell plan as an activation
// script for the user's shell. The script only exports the search path
// and environment; materializing the tools themselves is the
// provisioning step's job.
package shellgen

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modu-ai/shed/internal/resolve"
)

// ShellType identifies the syntax family the activation script targets.
type ShellType string

const (
	ShellBash    ShellType = "bash"
	ShellZsh     ShellType = "zsh"
	ShellFish    ShellType = "fish"
	ShellUnknown ShellType = ""
)

// Detect maps a $SHELL value to a ShellType. Unrecognized shells map
// to ShellUnknown; Script treats that as POSIX sh syntax.
func Detect(shellEnv string) ShellType {
	switch filepath.Base(shellEnv) {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	}
	return ShellUnknown
}

// Script renders the activation script for the plan. Output is
// deterministic: environment variables are emitted in sorted order.
func Script(plan *resolve.ShellPlan, shell ShellType) string {
	var b strings.Builder
	b.WriteString("# Generated by shed. Source this file to activate the shell.\n")

	switch shell {
	case ShellFish:
		writeFish(&b, plan)
	default:
		writePOSIX(&b, plan)
	}

	return b.String()
}

func writePOSIX(b *strings.Builder, plan *resolve.ShellPlan) {
	if len(plan.Path) > 0 {
		fmt.Fprintf(b, "export PATH=%q\n", strings.Join(plan.Path, ":")+":$PATH")
	}
	for _, key := range sortedKeys(plan.Env) {
		fmt.Fprintf(b, "export %s=%q\n", key, plan.Env[key])
	}
}

func writeFish(b *strings.Builder, plan *resolve.ShellPlan) {
	for i := len(plan.Path) - 1; i >= 0; i-- {
		fmt.Fprintf(b, "fish_add_path --prepend %q\n", plan.Path[i])
	}
	for _, key := range sortedKeys(plan.Env) {
		fmt.Fprintf(b, "set -gx %s %q\n", key, plan.Env[key])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
