// Package resolve turns a validated descriptor into a shell plan: the
// pinned sources, tool list, search path, and active hooks an external
// provisioning step needs to materialize the development shell.
package resolve

import (
	"fmt"
	"slices"

	"github.com/modu-ai/shed/pkg/models"
)

// ToolKind classifies where a tool on the shell path came from.
type ToolKind string

const (
	// KindPackage is a tool declared in the descriptor's package list.
	KindPackage ToolKind = "package"

	// KindToolchain is a core component of the selected toolchain bundle.
	KindToolchain ToolKind = "toolchain"

	// KindExtension is an optional toolchain extension component.
	KindExtension ToolKind = "extension"
)

// Tool is a single binary exposed on the resolved shell's search path.
type Tool struct {
	Name    string   `json:"name" yaml:"name"`
	Kind    ToolKind `json:"kind" yaml:"kind"`
	Source  string   `json:"source" yaml:"source"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
}

// PackageSource is a resolvable set of tools drawn from one input.
type PackageSource struct {
	Input string
	Tools []Tool
}

// coreComponents are the components every toolchain bundle carries
// regardless of channel. Extensions are added on top of these.
var coreComponents = []string{"compiler", "stdlib", "build-tool"}

// CoreComponents returns the component names present in every
// toolchain bundle.
func CoreComponents() []string {
	return slices.Clone(coreComponents)
}

// ApplyToolchainOverlay composes the toolchain onto a base package
// source. It is a pure function: the base is not mutated, and the same
// inputs always produce the same output. Toolchain components add to
// the base tool set and replace any same-named base entry, matching
// overlay semantics where the toolchain's definitions win.
func ApplyToolchainOverlay(base PackageSource, tc models.ToolchainConfig) PackageSource {
	version := toolchainVersion(tc)

	overlaid := make([]Tool, 0, len(base.Tools)+len(coreComponents)+len(tc.Extensions))
	replaced := make(map[string]bool)

	for _, name := range coreComponents {
		overlaid = append(overlaid, Tool{
			Name:    name,
			Kind:    KindToolchain,
			Source:  tc.Input,
			Version: version,
		})
		replaced[name] = true
	}
	for _, name := range tc.Extensions {
		if replaced[name] {
			continue
		}
		overlaid = append(overlaid, Tool{
			Name:    name,
			Kind:    KindExtension,
			Source:  tc.Input,
			Version: version,
		})
		replaced[name] = true
	}
	for _, tool := range base.Tools {
		if replaced[tool.Name] {
			continue
		}
		overlaid = append(overlaid, tool)
	}

	slices.SortFunc(overlaid, func(a, b Tool) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return PackageSource{Input: base.Input, Tools: overlaid}
}

// toolchainVersion renders the channel/version qualifier pair as a
// single version string, e.g. "nightly-2024-06-01" or "stable".
func toolchainVersion(tc models.ToolchainConfig) string {
	if tc.Version == "" {
		return string(tc.Channel)
	}
	return fmt.Sprintf("%s-%s", tc.Channel, tc.Version)
}
