package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"github.com/modu-ai/shed/pkg/models"
)

// Builder assembles a Descriptor programmatically. It exposes the same
// contract the YAML loader enforces: input names are unique, the
// platform must be recognized, the toolchain binds only to declared
// inputs, package declarations are an idempotent union, and hook names
// are checked against the static set.
//
// A Builder is not safe for concurrent use. Build returns an immutable
// snapshot; the Builder can keep being modified afterward.
type Builder struct {
	inputs   InputSet
	platform models.Platform
	tc       models.ToolchainConfig
	packages []string
	hooks    map[models.HookName]bool
}

// NewBuilder creates an empty Builder with the default toolchain channel.
func NewBuilder() *Builder {
	return &Builder{
		tc:    models.ToolchainConfig{Channel: DefaultChannel},
		hooks: make(map[models.HookName]bool),
	}
}

// DeclareInput registers a single named source pin.
// Returns ErrDuplicateInput if the name was already declared.
func (b *Builder) DeclareInput(name string, loc models.SourceLocator) error {
	return b.inputs.Add(name, loc)
}

// DeclareInputs registers named source pins. Names are processed in
// sorted order so the failing name is deterministic when the map
// contains both a fresh and a duplicate entry.
// Returns ErrDuplicateInput if any name was already declared.
func (b *Builder) DeclareInputs(locators map[string]models.SourceLocator) error {
	for _, name := range slices.Sorted(maps.Keys(locators)) {
		if err := b.inputs.Add(name, locators[name]); err != nil {
			return err
		}
	}
	return nil
}

// SelectPlatform restricts shell construction to one platform.
// Returns ErrUnsupportedPlatform if the identifier is not recognized.
func (b *Builder) SelectPlatform(p models.Platform) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedPlatform, p, joinPlatforms())
	}
	b.platform = p
	return nil
}

// ConfigureToolchain binds a toolchain to a previously declared input.
// Returns ErrUnknownInput if inputName was not declared.
func (b *Builder) ConfigureToolchain(inputName string, channel models.ToolchainChannel, version string, extensions []string) error {
	if !b.inputs.Has(inputName) {
		return fmt.Errorf("%w: %q", ErrUnknownInput, inputName)
	}
	if channel == "" {
		channel = DefaultChannel
	}
	if !channel.IsValid() {
		return fmt.Errorf("%w: unknown toolchain channel %q", ErrInvalidDescriptor, channel)
	}
	b.tc = models.ToolchainConfig{
		Input:      inputName,
		Channel:    channel,
		Version:    version,
		Extensions: slices.Clone(extensions),
	}
	slices.Sort(b.tc.Extensions)
	b.tc.Extensions = slices.Compact(b.tc.Extensions)
	return nil
}

// DeclarePackages adds tools to the shell's search path. Duplicates are
// harmless: the package list has idempotent union semantics.
func (b *Builder) DeclarePackages(names ...string) {
	b.packages = append(b.packages, names...)
	slices.Sort(b.packages)
	b.packages = slices.Compact(b.packages)
}

// SetHooks enables or disables named pre-commit checks.
// Returns ErrUnknownHook for a name outside the recognized static set;
// no toggles are applied in that case.
func (b *Builder) SetHooks(toggles map[models.HookName]bool) error {
	for name := range toggles {
		if !name.IsValid() {
			return fmt.Errorf("%w: %q (known: %s)", ErrUnknownHook, name, joinHooks())
		}
	}
	maps.Copy(b.hooks, toggles)
	return nil
}

// Build validates the assembled record and returns an immutable
// Descriptor. The returned descriptor shares no state with the Builder.
func (b *Builder) Build() (*Descriptor, error) {
	d := &Descriptor{
		Inputs:    b.inputs.clone(),
		Platform:  b.platform,
		Toolchain: b.tc,
		Packages:  slices.Clone(b.packages),
		Hooks:     maps.Clone(b.hooks),
	}
	d.Toolchain.Extensions = slices.Clone(b.tc.Extensions)
	d.Normalize()

	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}
