package descriptor

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/shed/pkg/models"
)

// Descriptor is the root environment descriptor record. It declares
// everything an external provisioning tool needs to materialize a
// reproducible development shell: pinned inputs, a target platform,
// a toolchain selection, extra packages, and pre-commit hook toggles.
//
// A Descriptor is constructed once, at load time, and never mutated
// afterward. Callers that need a modified copy use Clone.
type Descriptor struct {
	Inputs    InputSet                 `yaml:"inputs"`
	Platform  models.Platform          `yaml:"platform"`
	Toolchain models.ToolchainConfig   `yaml:"toolchain"`
	Packages  []string                 `yaml:"packages,omitempty"`
	Hooks     map[models.HookName]bool `yaml:"hooks,omitempty"`
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	out := &Descriptor{
		Inputs:    d.Inputs.clone(),
		Platform:  d.Platform,
		Toolchain: d.Toolchain,
		Packages:  slices.Clone(d.Packages),
		Hooks:     maps.Clone(d.Hooks),
	}
	out.Toolchain.Extensions = slices.Clone(d.Toolchain.Extensions)
	return out
}

// Normalize canonicalizes set-valued fields in place: package names and
// toolchain extensions are sorted and deduplicated. Declaring the same
// package twice is a no-op, so the canonical form drops repeats.
func (d *Descriptor) Normalize() {
	// Package and extension names may arrive in decomposed Unicode form
	// depending on the editor that wrote the file (macOS tends to emit
	// NFD). Canonicalize to NFC so set comparison and digests are stable.
	for i, p := range d.Packages {
		d.Packages[i] = norm.NFC.String(p)
	}
	slices.Sort(d.Packages)
	d.Packages = slices.Compact(d.Packages)
	for i, e := range d.Toolchain.Extensions {
		d.Toolchain.Extensions[i] = norm.NFC.String(e)
	}
	slices.Sort(d.Toolchain.Extensions)
	d.Toolchain.Extensions = slices.Compact(d.Toolchain.Extensions)
}

// Equal reports whether two descriptors describe the same environment.
// Package lists and extension lists compare as sets; inputs compare by
// name regardless of declaration order.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	a, b := d.Clone(), other.Clone()
	a.Normalize()
	b.Normalize()
	if a.Platform != b.Platform {
		return false
	}
	if a.Toolchain.Input != b.Toolchain.Input ||
		a.Toolchain.Channel != b.Toolchain.Channel ||
		a.Toolchain.Version != b.Toolchain.Version {
		return false
	}
	if !slices.Equal(a.Toolchain.Extensions, b.Toolchain.Extensions) {
		return false
	}
	if !slices.Equal(a.Packages, b.Packages) {
		return false
	}
	if !maps.Equal(a.Hooks, b.Hooks) {
		return false
	}
	return maps.Equal(a.Inputs.asMap(), b.Inputs.asMap())
}

// EnabledHooks returns the names of all hooks toggled on, sorted.
func (d *Descriptor) EnabledHooks() []models.HookName {
	var out []models.HookName
	for name, enabled := range d.Hooks {
		if enabled {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}

// InputSet is the declared set of named input references. Declaration
// order is preserved for serialization, but the set has map semantics:
// names are unique and lookups are by name.
type InputSet struct {
	refs []models.InputRef
}

// NewInputSet builds an InputSet from the given references.
// Returns ErrDuplicateInput if two references share a name.
func NewInputSet(refs ...models.InputRef) (InputSet, error) {
	var s InputSet
	for _, ref := range refs {
		if err := s.Add(ref.Name, ref.Locator); err != nil {
			return InputSet{}, err
		}
	}
	return s, nil
}

// Add declares a new input. Returns ErrDuplicateInput if the name was
// already declared.
func (s *InputSet) Add(name string, loc models.SourceLocator) error {
	if s.Has(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateInput, name)
	}
	s.refs = append(s.refs, models.InputRef{Name: name, Locator: loc})
	return nil
}

// Has reports whether an input with the given name is declared.
func (s *InputSet) Has(name string) bool {
	for _, ref := range s.refs {
		if ref.Name == name {
			return true
		}
	}
	return false
}

// Get returns the locator for the named input.
func (s *InputSet) Get(name string) (models.SourceLocator, bool) {
	for _, ref := range s.refs {
		if ref.Name == name {
			return ref.Locator, true
		}
	}
	return models.SourceLocator{}, false
}

// Len returns the number of declared inputs.
func (s *InputSet) Len() int {
	return len(s.refs)
}

// Names returns all declared input names in declaration order.
func (s *InputSet) Names() []string {
	names := make([]string, len(s.refs))
	for i, ref := range s.refs {
		names[i] = ref.Name
	}
	return names
}

// Refs returns a copy of all declared input references in declaration order.
func (s *InputSet) Refs() []models.InputRef {
	return slices.Clone(s.refs)
}

func (s *InputSet) clone() InputSet {
	return InputSet{refs: slices.Clone(s.refs)}
}

func (s *InputSet) asMap() map[string]models.SourceLocator {
	m := make(map[string]models.SourceLocator, len(s.refs))
	for _, ref := range s.refs {
		m[ref.Name] = ref.Locator
	}
	return m
}

// UnmarshalYAML decodes the inputs mapping. Unlike plain map decoding,
// declaration order is preserved and a repeated name is reported as
// ErrDuplicateInput instead of last-wins. A scalar value is shorthand
// for a locator with only a URL:
//
//	inputs:
//	  base: https://github.com/acme/pkgset
//	  toolchain-src:
//	    url: https://github.com/acme/toolchains
//	    ref: release-1.80
func (s *InputSet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: inputs must be a mapping (line %d)", ErrInvalidYAML, value.Line)
	}
	s.refs = nil
	for i := 0; i < len(value.Content)-1; i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		name := keyNode.Value

		var loc models.SourceLocator
		if valNode.Kind == yaml.ScalarNode {
			loc.URL = valNode.Value
		} else if err := valNode.Decode(&loc); err != nil {
			return fmt.Errorf("%w: input %q (line %d)", ErrInvalidYAML, name, valNode.Line)
		}

		if err := s.Add(name, loc); err != nil {
			return fmt.Errorf("%w (line %d)", err, keyNode.Line)
		}
	}
	return nil
}

// MarshalYAML encodes the inputs as a mapping in declaration order.
func (s InputSet) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, ref := range s.refs {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ref.Name}
		valNode := &yaml.Node{}
		if err := valNode.Encode(ref.Locator); err != nil {
			return nil, fmt.Errorf("encode input %q: %w", ref.Name, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
