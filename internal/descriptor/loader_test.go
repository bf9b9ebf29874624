package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modu-ai/shed/pkg/models"
)

const sampleYAML = `
inputs:
  base:
    url: https://github.com/acme/pkgset
    ref: release-24.05
  toolchain-src:
    url: https://github.com/acme/toolchains
    ref: main
    rev: a1b2c3d4
platform: linux-x86_64
toolchain:
  input: toolchain-src
  channel: nightly
  version: "2024-06-01"
  extensions: [analyzer, linter]
packages: [compiler, build-helper]
hooks:
  formatter: true
  shell-lint: true
`

func TestParseSampleDescriptor(t *testing.T) {
	t.Parallel()

	d, err := Parse([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if got := d.Inputs.Len(); got != 2 {
		t.Errorf("Inputs.Len() = %d, want 2", got)
	}
	loc, ok := d.Inputs.Get("toolchain-src")
	if !ok {
		t.Fatal("input toolchain-src not found")
	}
	if loc.Rev != "a1b2c3d4" {
		t.Errorf("toolchain-src rev = %q, want a1b2c3d4", loc.Rev)
	}
	if !loc.IsPinned() {
		t.Error("toolchain-src should be pinned")
	}

	if d.Platform != models.PlatformLinuxAMD64 {
		t.Errorf("Platform = %q, want linux-x86_64", d.Platform)
	}
	if d.Toolchain.Input != "toolchain-src" {
		t.Errorf("Toolchain.Input = %q, want toolchain-src", d.Toolchain.Input)
	}
	if d.Toolchain.Channel != models.ChannelNightly {
		t.Errorf("Toolchain.Channel = %q, want nightly", d.Toolchain.Channel)
	}

	// Packages are normalized to sorted set form.
	wantPackages := []string{"build-helper", "compiler"}
	if len(d.Packages) != len(wantPackages) {
		t.Fatalf("Packages = %v, want %v", d.Packages, wantPackages)
	}
	for i, p := range wantPackages {
		if d.Packages[i] != p {
			t.Errorf("Packages[%d] = %q, want %q", i, d.Packages[i], p)
		}
	}

	if !d.Hooks[models.HookFormatter] || !d.Hooks[models.HookShellLint] {
		t.Errorf("Hooks = %v, want formatter and shell-lint enabled", d.Hooks)
	}
}

func TestParseScalarInputShorthand(t *testing.T) {
	t.Parallel()

	d, err := Parse([]byte(`
inputs:
  base: https://github.com/acme/pkgset
platform: linux-x86_64
toolchain:
  input: base
`))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	loc, ok := d.Inputs.Get("base")
	if !ok {
		t.Fatal("input base not found")
	}
	if loc.URL != "https://github.com/acme/pkgset" {
		t.Errorf("URL = %q, want shorthand URL", loc.URL)
	}
	if loc.Ref != "" || loc.Rev != "" {
		t.Errorf("shorthand locator should have empty ref/rev, got %+v", loc)
	}
}

func TestParseDuplicateInputName(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
inputs:
  base:
    url: https://github.com/acme/pkgset
  base:
    url: https://github.com/acme/other
platform: linux-x86_64
`))
	if err == nil {
		t.Fatal("Parse() expected error for duplicate input name")
	}
	if !errors.Is(err, ErrDuplicateInput) {
		t.Errorf("expected ErrDuplicateInput, got: %v", err)
	}
}

func TestParseRejectsUnknownTopLevelKey(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
inputs:
  base: https://github.com/acme/pkgset
platform: linux-x86_64
compilers: [gcc]
`))
	if err == nil {
		t.Fatal("Parse() expected error for unknown top-level key")
	}
	if !errors.Is(err, ErrInvalidYAML) {
		t.Errorf("expected ErrInvalidYAML, got: %v", err)
	}
}

func TestParseMalformedYAML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"broken indentation", "inputs:\n  base:\n url: x"},
		{"inputs as list", "inputs:\n  - base\nplatform: linux-x86_64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatalf("Parse() expected error for %s", tt.name)
			}
			if !errors.Is(err, ErrInvalidYAML) {
				t.Errorf("expected ErrInvalidYAML, got: %v", err)
			}
		})
	}
}

func TestParseDefaultsApplied(t *testing.T) {
	t.Parallel()

	d, err := Parse([]byte(`
inputs:
  base: https://github.com/acme/pkgset
platform: linux-aarch64
toolchain:
  input: base
`))
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if d.Toolchain.Channel != DefaultChannel {
		t.Errorf("Toolchain.Channel = %q, want default %q", d.Toolchain.Channel, DefaultChannel)
	}
	if d.Hooks == nil {
		t.Error("Hooks map should be non-nil after parse")
	}
	if len(d.EnabledHooks()) != 0 {
		t.Errorf("EnabledHooks() = %v, want none by default", d.EnabledHooks())
	}
}

func TestLoaderFileNotFound(t *testing.T) {
	t.Parallel()

	l := NewLoader()
	_, err := l.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrDescriptorNotFound) {
		t.Errorf("expected ErrDescriptorNotFound, got: %v", err)
	}
}

func TestLoaderReadsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "shed.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := NewLoader()
	d, err := l.Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if d.Platform != models.PlatformLinuxAMD64 {
		t.Errorf("Platform = %q, want linux-x86_64", d.Platform)
	}
}
