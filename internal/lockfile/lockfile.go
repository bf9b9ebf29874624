// Package lockfile records the resolved pin state of a descriptor in
// shed.lock, so drift between the descriptor and a previously
// provisioned shell is detectable without re-resolving.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/modu-ai/shed/internal/defs"
	"github.com/modu-ai/shed/internal/descriptor"
)

// Sentinel errors for lockfile operations.
var (
	// ErrLockNotFound indicates the lockfile does not exist.
	ErrLockNotFound = errors.New("lockfile: lock file not found")

	// ErrLockStale indicates the descriptor changed since the lock was written.
	ErrLockStale = errors.New("lockfile: descriptor changed since lock was written")

	// ErrInvalidLock indicates the lockfile could not be parsed.
	ErrInvalidLock = errors.New("lockfile: invalid lock file")
)

// LockedInput is one input pin recorded in the lockfile.
type LockedInput struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Ref  string `yaml:"ref,omitempty"`
	Rev  string `yaml:"rev,omitempty"`
}

// Lock is the top-level structure stored in shed.lock.
type Lock struct {
	Generated time.Time     `yaml:"generated"`
	Digest    string        `yaml:"digest"`
	Inputs    []LockedInput `yaml:"inputs"`
}

// Generate builds a Lock for the given descriptor: one entry per
// declared input plus a digest of the descriptor's canonical form.
func Generate(d *descriptor.Descriptor) (*Lock, error) {
	digest, err := Digest(d)
	if err != nil {
		return nil, err
	}

	lock := &Lock{
		Generated: time.Now().UTC().Truncate(time.Second),
		Digest:    digest,
	}
	for _, ref := range d.Inputs.Refs() {
		lock.Inputs = append(lock.Inputs, LockedInput{
			Name: ref.Name,
			URL:  ref.Locator.URL,
			Ref:  ref.Locator.Ref,
			Rev:  ref.Locator.Rev,
		})
	}
	return lock, nil
}

// Digest computes the SHA-256 hex digest of the descriptor's canonical
// (normalized, re-marshaled) form.
func Digest(d *descriptor.Descriptor) (string, error) {
	canonical := d.Clone()
	canonical.Normalize()

	data, err := yaml.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("marshal descriptor for digest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks that the lock still matches the descriptor.
// Returns ErrLockStale when the digest differs.
func Verify(d *descriptor.Descriptor, lock *Lock) error {
	digest, err := Digest(d)
	if err != nil {
		return err
	}
	if digest != lock.Digest {
		return fmt.Errorf("%w: digest %s, lock has %s", ErrLockStale, digest[:12], shortDigest(lock.Digest))
	}
	return nil
}

// Write persists the lock next to the descriptor at the project root,
// atomically (temp file + rename).
func Write(projectRoot string, lock *Lock) error {
	data, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("marshal lock: %w", err)
	}

	path := filepath.Join(filepath.Clean(projectRoot), defs.LockYAML)
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".shed-lock-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}

// Read loads the lock from the project root.
func Read(projectRoot string) (*Lock, error) {
	path := filepath.Join(filepath.Clean(projectRoot), defs.LockYAML)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrLockNotFound, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var lock Lock
	if err := yaml.Unmarshal(data, &lock); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLock, err)
	}
	return &lock, nil
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
