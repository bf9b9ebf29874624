package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/pkg/models"
)

// writeDescriptor writes the sample descriptor into a temp project root
// and returns the root path.
func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, defs.DescriptorYAML), []byte(content), 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}
	return root
}

func TestManagerLoad(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)

	m := NewManager()
	d, err := m.Load(root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if d.Platform != models.PlatformLinuxAMD64 {
		t.Errorf("Platform = %q, want linux-x86_64", d.Platform)
	}
	if m.Path() != filepath.Join(root, defs.DescriptorYAML) {
		t.Errorf("Path() = %q, want descriptor under project root", m.Path())
	}
}

func TestManagerGetBeforeLoad(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if d := m.Get(); d != nil {
		t.Errorf("Get() before Load = %+v, want nil", d)
	}
}

func TestManagerSaveBeforeLoad(t *testing.T) {
	t.Parallel()

	m := NewManager()
	if err := m.Save(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Save() before Load: expected ErrNotLoaded, got: %v", err)
	}
	if err := m.Reload(); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Reload() before Load: expected ErrNotLoaded, got: %v", err)
	}
	if err := m.Watch(func(Descriptor) {}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Watch() before Load: expected ErrNotLoaded, got: %v", err)
	}
}

func TestManagerLoadInvalidDescriptor(t *testing.T) {
	root := writeDescriptor(t, `
inputs:
  base: https://github.com/acme/pkgset
platform: solaris-sparc
toolchain:
  input: base
`)

	m := NewManager()
	_, err := m.Load(root)
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("expected ErrUnsupportedPlatform, got: %v", err)
	}
}

func TestManagerRoundTripIdempotence(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)

	m := NewManager()
	first, err := m.Load(root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	// Save re-serializes the canonical form; loading it again must
	// yield an identical record.
	if err := m.Save(); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	m2 := NewManager()
	second, err := m2.Load(root)
	if err != nil {
		t.Fatalf("Load() after Save unexpected error: %v", err)
	}

	if !first.Equal(second) {
		t.Errorf("round trip changed descriptor:\nfirst:  %+v\nsecond: %+v", first, second)
	}

	// A second save/load cycle is a fixed point.
	if err := m2.Save(); err != nil {
		t.Fatalf("second Save() unexpected error: %v", err)
	}
	third, err := NewManager().Load(root)
	if err != nil {
		t.Fatalf("third Load() unexpected error: %v", err)
	}
	if !second.Equal(third) {
		t.Error("second round trip changed descriptor")
	}
}

func TestManagerSavePreservesInputOrder(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)

	m := NewManager()
	if _, err := m.Load(root); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, defs.DescriptorYAML))
	if err != nil {
		t.Fatalf("read saved descriptor: %v", err)
	}

	d, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse saved descriptor: %v", err)
	}
	names := d.Inputs.Names()
	if len(names) != 2 || names[0] != "base" || names[1] != "toolchain-src" {
		t.Errorf("saved input order = %v, want [base toolchain-src]", names)
	}
}

func TestManagerReloadNotifiesWatchers(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)

	m := NewManager()
	if _, err := m.Load(root); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	var observed []models.Platform
	if err := m.Watch(func(d Descriptor) {
		observed = append(observed, d.Platform)
	}); err != nil {
		t.Fatalf("Watch() unexpected error: %v", err)
	}

	// Change the platform on disk, then reload.
	updated := []byte(`
inputs:
  base:
    url: https://github.com/acme/pkgset
  toolchain-src:
    url: https://github.com/acme/toolchains
platform: linux-aarch64
toolchain:
  input: toolchain-src
`)
	if err := os.WriteFile(filepath.Join(root, defs.DescriptorYAML), updated, 0o644); err != nil {
		t.Fatalf("rewrite descriptor: %v", err)
	}

	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() unexpected error: %v", err)
	}

	if len(observed) != 1 || observed[0] != models.PlatformLinuxARM64 {
		t.Errorf("watcher observed %v, want one linux-aarch64 notification", observed)
	}
	if got := m.Get().Platform; got != models.PlatformLinuxARM64 {
		t.Errorf("Get().Platform = %q after reload, want linux-aarch64", got)
	}
}

func TestManagerEnvPlatformOverride(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)
	t.Setenv(defs.EnvPlatform, string(models.PlatformDarwinARM64))

	m := NewManager()
	d, err := m.Load(root)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if d.Platform != models.PlatformDarwinARM64 {
		t.Errorf("Platform = %q, want env override darwin-aarch64", d.Platform)
	}
}

func TestManagerEnvDescriptorPathOverride(t *testing.T) {
	alt := filepath.Join(t.TempDir(), "alternate.yaml")
	if err := os.WriteFile(alt, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write alternate descriptor: %v", err)
	}
	t.Setenv(defs.EnvDescriptorPath, alt)

	m := NewManager()
	if _, err := m.Load(t.TempDir()); err != nil {
		t.Fatalf("Load() with SHED_DESCRIPTOR override: %v", err)
	}
	if m.Path() != alt {
		t.Errorf("Path() = %q, want %q", m.Path(), alt)
	}
}

func TestManagerGetReturnsCopy(t *testing.T) {
	root := writeDescriptor(t, sampleYAML)

	m := NewManager()
	if _, err := m.Load(root); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	d := m.Get()
	d.Platform = "mutated"
	d.Hooks[models.HookLinter] = true

	fresh := m.Get()
	if fresh.Platform == "mutated" {
		t.Error("mutating Get() result leaked into manager state")
	}
	if fresh.Hooks[models.HookLinter] {
		t.Error("mutating Get() hook map leaked into manager state")
	}
}
