package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/pkg/models"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateLoaded
	stateWatching
)

// Manager provides thread-safe access to the loaded descriptor.
// It must be initialized via Load() before use. The descriptor itself
// is immutable after load; Reload replaces it wholesale.
type Manager struct {
	mu        sync.RWMutex
	desc      *Descriptor
	path      string
	state     managerState
	loader    *Loader
	callbacks []func(Descriptor)
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// Load reads the descriptor from the project root's shed.yaml. The
// SHED_DESCRIPTOR environment variable overrides the file location,
// and SHED_PLATFORM overrides the target platform. The descriptor is
// validated before being stored.
func (m *Manager) Load(projectRoot string) (*Descriptor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := filepath.Join(filepath.Clean(projectRoot), defs.DescriptorYAML)
	if envPath := os.Getenv(defs.EnvDescriptorPath); envPath != "" {
		path = filepath.Clean(envPath)
	}

	d, err := m.loadAndValidate(path)
	if err != nil {
		return nil, err
	}

	m.desc = d
	m.path = path
	m.state = stateLoaded

	return d.Clone(), nil
}

// Get returns a copy of the current descriptor.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Descriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.desc.Clone()
}

// Path returns the descriptor file path resolved at Load time.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Save persists the current descriptor to disk atomically using a
// temp file + os.Rename. Returns ErrNotLoaded if Load() has not been
// called.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotLoaded
	}

	data, err := yaml.Marshal(m.desc)
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}

	return atomicWrite(m.path, data)
}

// WriteFile marshals a descriptor and writes it to path atomically.
// It serves callers that create a descriptor before any Manager
// exists, such as project initialization.
func WriteFile(path string, d *Descriptor) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal descriptor: %w", err)
	}
	return atomicWrite(path, data)
}

// Reload forces a re-read from disk, replacing the in-memory
// descriptor. Registered callbacks are notified with a copy.
// Returns ErrNotLoaded if Load() has not been called.
func (m *Manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotLoaded
	}

	d, err := m.loadAndValidate(m.path)
	if err != nil {
		return fmt.Errorf("reload descriptor: %w", err)
	}

	m.desc = d

	for _, cb := range m.callbacks {
		cb(*m.desc.Clone())
	}

	return nil
}

// Watch registers a callback to be invoked when the descriptor is
// reloaded. Returns ErrNotLoaded if Load() has not been called.
func (m *Manager) Watch(callback func(Descriptor)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotLoaded
	}

	m.callbacks = append(m.callbacks, callback)
	m.state = stateWatching
	return nil
}

// loadAndValidate reads the descriptor, applies environment overrides,
// and validates the result. Caller must hold the write lock.
func (m *Manager) loadAndValidate(path string) (*Descriptor, error) {
	d, err := m.loader.Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(d)

	if err := Validate(d); err != nil {
		return nil, err
	}
	return d, nil
}

// applyEnvOverrides applies environment variable overrides to the
// descriptor. Environment variables have higher priority than file
// values.
func applyEnvOverrides(d *Descriptor) {
	if platform := os.Getenv(defs.EnvPlatform); platform != "" {
		d.Platform = models.Platform(platform)
	}
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".shed-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
