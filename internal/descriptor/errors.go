// Package descriptor provides loading, validation, and management of the
// shed environment descriptor. It reads the shed.yaml record, applies
// defaults, validates referential integrity, and provides thread-safe
// access to the loaded descriptor.
package descriptor

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for descriptor operations.
var (
	// ErrDescriptorNotFound indicates the descriptor file was not found.
	ErrDescriptorNotFound = errors.New("descriptor: descriptor file not found")

	// ErrInvalidDescriptor indicates the descriptor is invalid.
	ErrInvalidDescriptor = errors.New("descriptor: invalid descriptor")

	// ErrDuplicateInput indicates two input references share a name.
	ErrDuplicateInput = errors.New("descriptor: duplicate input name")

	// ErrUnknownInput indicates the toolchain references an undeclared input.
	ErrUnknownInput = errors.New("descriptor: reference to undeclared input")

	// ErrUnsupportedPlatform indicates a platform identifier outside the recognized set.
	ErrUnsupportedPlatform = errors.New("descriptor: unsupported platform identifier")

	// ErrUnknownHook indicates a hook name not in the recognized static set.
	ErrUnknownHook = errors.New("descriptor: unrecognized hook name")

	// ErrInvalidYAML indicates invalid YAML syntax in the descriptor file.
	ErrInvalidYAML = errors.New("descriptor: invalid YAML syntax")

	// ErrNotLoaded indicates the Manager has not been initialized via Load().
	ErrNotLoaded = errors.New("descriptor: manager not loaded, call Load() first")
)

// ValidationError represents a single validation error with field context.
type ValidationError struct {
	Field   string
	Message string
	Value   any
	Wrapped error // underlying sentinel error for errors.Is support
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error: field %q: %s", e.Field, e.Message)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Wrapped
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed with %d error(s): %s", len(e.Errors), strings.Join(msgs, "; "))
}

// Is supports errors.Is by checking contained validation errors against the target.
func (e *ValidationErrors) Is(target error) bool {
	if target == ErrInvalidDescriptor {
		return true
	}
	for _, ve := range e.Errors {
		if ve.Wrapped != nil && errors.Is(ve.Wrapped, target) {
			return true
		}
	}
	return false
}
