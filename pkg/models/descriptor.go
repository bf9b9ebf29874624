package models

// Platform identifies the operating system and architecture a shell
// is built for. A descriptor targets exactly one platform.
type Platform string

const (
	PlatformLinuxAMD64  Platform = "linux-x86_64"
	PlatformLinuxARM64  Platform = "linux-aarch64"
	PlatformDarwinAMD64 Platform = "darwin-x86_64"
	PlatformDarwinARM64 Platform = "darwin-aarch64"
)

// SupportedPlatforms returns all recognized platform identifiers.
func SupportedPlatforms() []Platform {
	return []Platform{
		PlatformLinuxAMD64,
		PlatformLinuxARM64,
		PlatformDarwinAMD64,
		PlatformDarwinARM64,
	}
}

// IsValid checks if the platform is among the recognized set.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformLinuxAMD64, PlatformLinuxARM64, PlatformDarwinAMD64, PlatformDarwinARM64:
		return true
	}
	return false
}

// OS returns the operating system component of the platform identifier,
// or "" if the platform is not valid.
func (p Platform) OS() string {
	switch p {
	case PlatformLinuxAMD64, PlatformLinuxARM64:
		return "linux"
	case PlatformDarwinAMD64, PlatformDarwinARM64:
		return "darwin"
	}
	return ""
}

// Arch returns the architecture component of the platform identifier,
// or "" if the platform is not valid.
func (p Platform) Arch() string {
	switch p {
	case PlatformLinuxAMD64, PlatformDarwinAMD64:
		return "x86_64"
	case PlatformLinuxARM64, PlatformDarwinARM64:
		return "aarch64"
	}
	return ""
}

// SourceLocator pins an external source: a repository URL plus a ref
// (branch or tag) and an optional resolved revision. A locator with an
// empty Rev is a floating pin; `shed lock` records the resolved Rev.
type SourceLocator struct {
	URL string `yaml:"url" json:"url"`
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Rev string `yaml:"rev,omitempty" json:"rev,omitempty"`
}

// IsPinned reports whether the locator carries a resolved revision.
func (l SourceLocator) IsPinned() bool {
	return l.Rev != ""
}

// InputRef is a named, version-pinned external source of packages or
// tooling. Inputs are declared once at load and never mutated.
type InputRef struct {
	Name    string        `yaml:"name" json:"name"`
	Locator SourceLocator `yaml:"locator" json:"locator"`
}

// ToolchainChannel selects the release channel of the toolchain bundle.
type ToolchainChannel string

const (
	ChannelStable  ToolchainChannel = "stable"
	ChannelBeta    ToolchainChannel = "beta"
	ChannelNightly ToolchainChannel = "nightly"
)

// ValidChannels returns all recognized toolchain channels.
func ValidChannels() []ToolchainChannel {
	return []ToolchainChannel{ChannelStable, ChannelBeta, ChannelNightly}
}

// IsValid checks if the channel is a recognized value.
func (c ToolchainChannel) IsValid() bool {
	switch c {
	case ChannelStable, ChannelBeta, ChannelNightly:
		return true
	}
	return false
}

// ToolchainConfig selects the compiler/tool bundle made available in the
// shell. It binds a channel and version to a previously declared input
// and names optional extension components.
type ToolchainConfig struct {
	Input      string           `yaml:"input" json:"input"`
	Channel    ToolchainChannel `yaml:"channel" json:"channel"`
	Version    string           `yaml:"version,omitempty" json:"version,omitempty"`
	Extensions []string         `yaml:"extensions,omitempty" json:"extensions,omitempty"`
}

// HookName identifies a pre-commit check. The recognized set is static.
type HookName string

const (
	HookFormatter  HookName = "formatter"
	HookLinter     HookName = "linter"
	HookShellLint  HookName = "shell-lint"
	HookYAMLLint   HookName = "yaml-lint"
	HookWhitespace HookName = "whitespace"
)

// KnownHooks returns all recognized hook names.
func KnownHooks() []HookName {
	return []HookName{HookFormatter, HookLinter, HookShellLint, HookYAMLLint, HookWhitespace}
}

// IsValid checks if the hook name is among the recognized set.
func (h HookName) IsValid() bool {
	switch h {
	case HookFormatter, HookLinter, HookShellLint, HookYAMLLint, HookWhitespace:
		return true
	}
	return false
}
