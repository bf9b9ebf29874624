package descriptor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/shed/pkg/models"
)

// Loader reads the environment descriptor from its YAML file.
type Loader struct{}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the descriptor at the given path. The decode
// is strict: unknown top-level keys are an error, as is a repeated
// input name. The returned descriptor is normalized but not yet
// validated; callers run Validate before using it.
func (l *Loader) Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	slog.Debug("descriptor loaded",
		"path", path,
		"inputs", d.Inputs.Len(),
		"platform", string(d.Platform),
	)
	return d, nil
}

// Parse decodes a descriptor from raw YAML. Missing sections take
// compiled defaults; the toolchain channel defaults to stable.
func Parse(data []byte) (*Descriptor, error) {
	d := NewDefaultDescriptor()
	// Parse into a fresh hook map so that file toggles replace, not
	// merge with, the default all-off set.
	d.Hooks = nil

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty descriptor", ErrInvalidYAML)
		}
		if errors.Is(err, ErrDuplicateInput) || errors.Is(err, ErrInvalidYAML) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if d.Toolchain.Channel == "" {
		d.Toolchain.Channel = DefaultChannel
	}
	if d.Hooks == nil {
		d.Hooks = map[models.HookName]bool{}
	}
	d.Normalize()
	return d, nil
}
