package models

import (
	"slices"
	"testing"
)

func TestPlatformIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform Platform
		want     bool
	}{
		{"linux-x86_64 is valid", PlatformLinuxAMD64, true},
		{"linux-aarch64 is valid", PlatformLinuxARM64, true},
		{"darwin-x86_64 is valid", PlatformDarwinAMD64, true},
		{"darwin-aarch64 is valid", PlatformDarwinARM64, true},
		{"empty is invalid", Platform(""), false},
		{"windows is invalid", Platform("windows-x86_64"), false},
		{"uppercase is invalid", Platform("LINUX-X86_64"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.platform.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v for %q", got, tt.want, tt.platform)
			}
		})
	}
}

func TestPlatformComponents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		platform Platform
		wantOS   string
		wantArch string
	}{
		{PlatformLinuxAMD64, "linux", "x86_64"},
		{PlatformLinuxARM64, "linux", "aarch64"},
		{PlatformDarwinAMD64, "darwin", "x86_64"},
		{PlatformDarwinARM64, "darwin", "aarch64"},
		{Platform("bogus"), "", ""},
	}

	for _, tt := range tests {
		if got := tt.platform.OS(); got != tt.wantOS {
			t.Errorf("OS() = %q, want %q for %q", got, tt.wantOS, tt.platform)
		}
		if got := tt.platform.Arch(); got != tt.wantArch {
			t.Errorf("Arch() = %q, want %q for %q", got, tt.wantArch, tt.platform)
		}
	}
}

func TestSupportedPlatformsAllValid(t *testing.T) {
	t.Parallel()

	for _, p := range SupportedPlatforms() {
		if !p.IsValid() {
			t.Errorf("SupportedPlatforms() returned invalid platform %q", p)
		}
	}
}

func TestChannelIsValid(t *testing.T) {
	t.Parallel()

	for _, c := range ValidChannels() {
		if !c.IsValid() {
			t.Errorf("ValidChannels() returned invalid channel %q", c)
		}
	}
	if ToolchainChannel("experimental").IsValid() {
		t.Error("IsValid() = true for unrecognized channel \"experimental\"")
	}
	if ToolchainChannel("").IsValid() {
		t.Error("IsValid() = true for empty channel")
	}
}

func TestHookNameIsValid(t *testing.T) {
	t.Parallel()

	known := KnownHooks()
	for _, h := range known {
		if !h.IsValid() {
			t.Errorf("KnownHooks() returned invalid hook %q", h)
		}
	}
	if !slices.Contains(known, HookFormatter) {
		t.Error("KnownHooks() missing formatter")
	}
	if HookName("spell-check").IsValid() {
		t.Error("IsValid() = true for unrecognized hook \"spell-check\"")
	}
}

func TestSourceLocatorIsPinned(t *testing.T) {
	t.Parallel()

	floating := SourceLocator{URL: "https://github.com/acme/pkgs", Ref: "main"}
	if floating.IsPinned() {
		t.Error("IsPinned() = true for locator without rev")
	}

	pinned := SourceLocator{URL: "https://github.com/acme/pkgs", Ref: "main", Rev: "a1b2c3d"}
	if !pinned.IsPinned() {
		t.Error("IsPinned() = false for locator with rev")
	}
}
