package descriptor

import (
	"errors"
	"testing"

	"github.com/modu-ai/shed/pkg/models"
)

// validDescriptor returns a descriptor that passes validation.
func validDescriptor(t *testing.T) *Descriptor {
	t.Helper()

	inputs, err := NewInputSet(
		models.InputRef{Name: "base", Locator: models.SourceLocator{URL: "https://github.com/acme/pkgset", Ref: "release-24.05"}},
		models.InputRef{Name: "toolchain-src", Locator: models.SourceLocator{URL: "https://github.com/acme/toolchains", Rev: "a1b2c3d4"}},
	)
	if err != nil {
		t.Fatalf("NewInputSet: %v", err)
	}

	return &Descriptor{
		Inputs:   inputs,
		Platform: models.PlatformLinuxAMD64,
		Toolchain: models.ToolchainConfig{
			Input:      "toolchain-src",
			Channel:    models.ChannelNightly,
			Version:    "2024-06-01",
			Extensions: []string{"analyzer", "linter"},
		},
		Packages: []string{"build-helper", "compiler"},
		Hooks: map[models.HookName]bool{
			models.HookFormatter: true,
			models.HookShellLint: true,
		},
	}
}

func TestValidateValidDescriptor(t *testing.T) {
	t.Parallel()

	if err := Validate(validDescriptor(t)); err != nil {
		t.Errorf("Validate() expected no error for valid descriptor, got: %v", err)
	}
}

func TestValidateUnknownToolchainInput(t *testing.T) {
	t.Parallel()

	d := validDescriptor(t)
	d.Toolchain.Input = "undeclared"

	err := Validate(d)
	if err == nil {
		t.Fatal("Validate() expected error for undeclared toolchain input")
	}
	if !errors.Is(err, ErrUnknownInput) {
		t.Errorf("expected ErrUnknownInput, got: %v", err)
	}

	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	found := false
	for _, e := range ve.Errors {
		if e.Field == "toolchain.input" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected validation error for field toolchain.input")
	}
}

func TestValidatePlatform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		platform models.Platform
		wantErr  bool
	}{
		{"linux-x86_64 is valid", models.PlatformLinuxAMD64, false},
		{"darwin-aarch64 is valid", models.PlatformDarwinARM64, false},
		{"empty is an error", "", true},
		{"windows is unsupported", models.Platform("windows-x86_64"), true},
		{"typo is unsupported", models.Platform("linux_x86-64"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := validDescriptor(t)
			d.Platform = tt.platform

			err := Validate(d)
			if tt.wantErr && err == nil {
				t.Errorf("Validate() expected error for platform %q, got nil", tt.platform)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() expected no error for platform %q, got: %v", tt.platform, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrUnsupportedPlatform) {
				t.Errorf("expected ErrUnsupportedPlatform, got: %v", err)
			}
		})
	}
}

func TestValidateUnknownHook(t *testing.T) {
	t.Parallel()

	d := validDescriptor(t)
	d.Hooks[models.HookName("spell-check")] = true

	err := Validate(d)
	if err == nil {
		t.Fatal("Validate() expected error for unrecognized hook name")
	}
	if !errors.Is(err, ErrUnknownHook) {
		t.Errorf("expected ErrUnknownHook, got: %v", err)
	}
}

func TestValidateDisabledUnknownHookStillFails(t *testing.T) {
	t.Parallel()

	// A toggle set to false is still a reference to a hook that does
	// not exist; silently ignoring it would hide the typo.
	d := validDescriptor(t)
	d.Hooks[models.HookName("formater")] = false

	if err := Validate(d); !errors.Is(err, ErrUnknownHook) {
		t.Errorf("expected ErrUnknownHook for disabled unknown hook, got: %v", err)
	}
}

func TestValidateEmptyInputURL(t *testing.T) {
	t.Parallel()

	inputs, err := NewInputSet(models.InputRef{Name: "base"})
	if err != nil {
		t.Fatalf("NewInputSet: %v", err)
	}
	d := validDescriptor(t)
	d.Inputs = inputs
	d.Toolchain.Input = "base"

	verr := Validate(d)
	if verr == nil {
		t.Fatal("Validate() expected error for input without URL")
	}
	if !errors.Is(verr, ErrInvalidDescriptor) {
		t.Errorf("expected ErrInvalidDescriptor, got: %v", verr)
	}
}

func TestValidateInvalidChannel(t *testing.T) {
	t.Parallel()

	d := validDescriptor(t)
	d.Toolchain.Channel = models.ToolchainChannel("experimental")

	if err := Validate(d); err == nil {
		t.Fatal("Validate() expected error for invalid channel")
	}
}

func TestValidateEmptyPackageName(t *testing.T) {
	t.Parallel()

	d := validDescriptor(t)
	d.Packages = append(d.Packages, "")

	if err := Validate(d); err == nil {
		t.Fatal("Validate() expected error for empty package name")
	}
}

func TestValidationErrorsAggregation(t *testing.T) {
	t.Parallel()

	d := validDescriptor(t)
	d.Platform = "amiga"
	d.Toolchain.Input = "undeclared"
	d.Hooks[models.HookName("spell-check")] = true

	err := Validate(d)
	var ve *ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 aggregated errors, got %d: %v", len(ve.Errors), ve)
	}
	// All three sentinels must be reachable through errors.Is.
	for _, target := range []error{ErrUnsupportedPlatform, ErrUnknownInput, ErrUnknownHook} {
		if !errors.Is(err, target) {
			t.Errorf("errors.Is(err, %v) = false", target)
		}
	}
}
