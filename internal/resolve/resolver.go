package resolve

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/modu-ai/shed/internal/descriptor"
	"github.com/modu-ai/shed/pkg/models"
)

// PinnedSource is an input reference carried into the shell plan.
type PinnedSource struct {
	Name    string               `json:"name" yaml:"name"`
	Locator models.SourceLocator `json:"locator" yaml:"locator"`
}

// ShellPlan is the resolved form of a descriptor: everything the
// provisioning step needs to assemble the isolated shell. The plan is
// a value object; resolving the same descriptor twice yields equal
// plans.
type ShellPlan struct {
	Platform models.Platform   `json:"platform" yaml:"platform"`
	Sources  []PinnedSource    `json:"sources" yaml:"sources"`
	Tools    []Tool            `json:"tools" yaml:"tools"`
	Path     []string          `json:"path" yaml:"path"`
	Env      map[string]string `json:"env" yaml:"env"`
	Hooks    []models.HookName `json:"hooks,omitempty" yaml:"hooks,omitempty"`
}

// ToolNames returns the names of all tools in the plan, in plan order.
func (p *ShellPlan) ToolNames() []string {
	names := make([]string, len(p.Tools))
	for i, tool := range p.Tools {
		names[i] = tool.Name
	}
	return names
}

// HasTool reports whether a tool with the given name is on the plan.
func (p *ShellPlan) HasTool(name string) bool {
	for _, tool := range p.Tools {
		if tool.Name == name {
			return true
		}
	}
	return false
}

// Resolve produces the shell plan for a descriptor. The descriptor is
// re-validated first: resolution of an invalid descriptor must fail the
// same way loading it does, with no partial plan.
//
// Composition is explicit: the declared packages form the base package
// source (drawn from the base input), the toolchain overlay is applied
// to it, and the shell is assembled from the result.
func Resolve(d *descriptor.Descriptor) (*ShellPlan, error) {
	if err := descriptor.Validate(d); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	baseInput := baseInputName(d)

	base := PackageSource{Input: baseInput}
	for _, pkg := range d.Packages {
		base.Tools = append(base.Tools, Tool{
			Name:   pkg,
			Kind:   KindPackage,
			Source: baseInput,
		})
	}

	overlaid := ApplyToolchainOverlay(base, d.Toolchain)

	plan := &ShellPlan{
		Platform: d.Platform,
		Tools:    overlaid.Tools,
		Path:     pathEntries(d),
		Env: map[string]string{
			"SHED_PLATFORM":  string(d.Platform),
			"SHED_TOOLCHAIN": toolchainVersion(d.Toolchain),
		},
		Hooks: d.EnabledHooks(),
	}

	for _, ref := range d.Inputs.Refs() {
		plan.Sources = append(plan.Sources, PinnedSource{Name: ref.Name, Locator: ref.Locator})
	}

	slog.Debug("descriptor resolved",
		"platform", string(plan.Platform),
		"tools", len(plan.Tools),
		"hooks", len(plan.Hooks),
	)
	return plan, nil
}

// baseInputName picks the input the package list is drawn from: the
// first declared input that is not the toolchain's, falling back to
// the toolchain input when it is the only one declared.
func baseInputName(d *descriptor.Descriptor) string {
	for _, name := range d.Inputs.Names() {
		if name != d.Toolchain.Input {
			return name
		}
	}
	return d.Toolchain.Input
}

// pathEntries computes the search path the activation script exports:
// one profile bin directory per platform, with the toolchain's own bin
// directory ahead of it so toolchain binaries shadow profile packages.
func pathEntries(d *descriptor.Descriptor) []string {
	profile := path.Join(".shed", "profiles", string(d.Platform))
	return []string{
		path.Join(profile, "toolchain", "bin"),
		path.Join(profile, "bin"),
	}
}
