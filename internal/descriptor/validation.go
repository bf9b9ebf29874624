package descriptor

import (
	"fmt"
	"strings"

	"github.com/modu-ai/shed/pkg/models"
)

// Validate checks the descriptor for correctness. Every error is
// load-time and fatal: an invalid descriptor cannot be resolved, and
// there is no recovery path.
func Validate(d *Descriptor) error {
	var errs []ValidationError

	errs = append(errs, validateInputs(&d.Inputs)...)
	errs = append(errs, validatePlatform(d.Platform)...)
	errs = append(errs, validateToolchain(&d.Toolchain, &d.Inputs)...)
	errs = append(errs, validatePackages(d.Packages)...)
	errs = append(errs, validateHooks(d.Hooks)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateInputs checks that every declared input carries a usable locator.
// Name uniqueness is structural: InputSet rejects duplicates at build time.
func validateInputs(inputs *InputSet) []ValidationError {
	var errs []ValidationError

	for _, ref := range inputs.Refs() {
		if ref.Name == "" {
			errs = append(errs, ValidationError{
				Field:   "inputs",
				Message: "input name must not be empty",
				Wrapped: ErrInvalidDescriptor,
			})
			continue
		}
		if ref.Locator.URL == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("inputs.%s.url", ref.Name),
				Message: "locator URL is required",
				Wrapped: ErrInvalidDescriptor,
			})
		}
	}

	return errs
}

// validatePlatform checks that the platform identifier is in the
// recognized enumerated set.
func validatePlatform(p models.Platform) []ValidationError {
	if p == "" {
		return []ValidationError{
			{
				Field:   "platform",
				Message: "required field is empty; set the target platform in shed.yaml (example: platform: linux-x86_64)",
				Wrapped: ErrUnsupportedPlatform,
			},
		}
	}
	if !p.IsValid() {
		return []ValidationError{
			{
				Field:   "platform",
				Message: fmt.Sprintf("must be one of: %s", joinPlatforms()),
				Value:   string(p),
				Wrapped: ErrUnsupportedPlatform,
			},
		}
	}
	return nil
}

// validateToolchain checks the toolchain section. The bound input must
// exist in the declared input set (the descriptor's referential
// integrity invariant).
func validateToolchain(tc *models.ToolchainConfig, inputs *InputSet) []ValidationError {
	var errs []ValidationError

	if tc.Input == "" {
		errs = append(errs, ValidationError{
			Field:   "toolchain.input",
			Message: "the toolchain must be bound to a declared input",
			Wrapped: ErrUnknownInput,
		})
	} else if !inputs.Has(tc.Input) {
		errs = append(errs, ValidationError{
			Field:   "toolchain.input",
			Message: fmt.Sprintf("references undeclared input; declared inputs: %s", strings.Join(inputs.Names(), ", ")),
			Value:   tc.Input,
			Wrapped: ErrUnknownInput,
		})
	}

	if tc.Channel != "" && !tc.Channel.IsValid() {
		errs = append(errs, ValidationError{
			Field:   "toolchain.channel",
			Message: "must be one of: stable, beta, nightly",
			Value:   string(tc.Channel),
			Wrapped: ErrInvalidDescriptor,
		})
	}

	for _, ext := range tc.Extensions {
		if ext == "" {
			errs = append(errs, ValidationError{
				Field:   "toolchain.extensions",
				Message: "extension name must not be empty",
				Wrapped: ErrInvalidDescriptor,
			})
		}
	}

	return errs
}

// validatePackages checks package names. Duplicates are harmless
// (idempotent union semantics) and are not reported.
func validatePackages(packages []string) []ValidationError {
	var errs []ValidationError

	for _, name := range packages {
		if name == "" {
			errs = append(errs, ValidationError{
				Field:   "packages",
				Message: "package name must not be empty",
				Wrapped: ErrInvalidDescriptor,
			})
		}
	}

	return errs
}

// validateHooks checks hook toggles against the recognized static set.
// An unrecognized name is a load-time error rather than being silently
// ignored: a silently dropped toggle would leave a check the author
// believes is active permanently off.
func validateHooks(hooks map[models.HookName]bool) []ValidationError {
	var errs []ValidationError

	for name := range hooks {
		if !name.IsValid() {
			errs = append(errs, ValidationError{
				Field:   "hooks",
				Message: fmt.Sprintf("must be one of: %s", joinHooks()),
				Value:   string(name),
				Wrapped: ErrUnknownHook,
			})
		}
	}

	return errs
}

func joinPlatforms() string {
	platforms := models.SupportedPlatforms()
	strs := make([]string, len(platforms))
	for i, p := range platforms {
		strs[i] = string(p)
	}
	return strings.Join(strs, ", ")
}

func joinHooks() string {
	hooks := models.KnownHooks()
	strs := make([]string, len(hooks))
	for i, h := range hooks {
		strs[i] = string(h)
	}
	return strings.Join(strs, ", ")
}
