// Package flock serializes finalize runs that share a project root.
//
// Two Unity builds finishing at the same time would otherwise interleave
// their writes to version.txt and bundleVersionCode.txt. Each run holds an
// advisory lock on a per-project lock file for the metadata and relocation
// phases; a second run fails fast instead of waiting.
//
// Import rules:
//   - CAN import: std lib, golang.org/x/sys
//   - MUST NOT import: internal packages
package flock

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked is returned when another process already holds the lock.
var ErrLocked = errors.New("lock is held by another process")

// Lock is an exclusive advisory lock held on an open file.
type Lock struct {
	file *os.File
}

// TryAcquire opens or creates path and locks it without blocking.
// It returns an error wrapping ErrLocked when the lock is taken.
func TryAcquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) // #nosec G304 -- path built by ProjectLockPath
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}

	if err := exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, lockError(path, err)
	}
	return &Lock{file: f}, nil
}

// lockError wraps ErrLocked only when err means another holder has the lock.
// Any other failure, such as ENOLCK on a network filesystem, is reported as is.
func lockError(path string, err error) error {
	if isContention(err) {
		return fmt.Errorf("%w: %s: %w", ErrLocked, path, err)
	}
	return fmt.Errorf("lock %s: %w", path, err)
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.file.Name()
}

// Release unlocks and closes the lock file. The file itself is left in place
// so later runs reuse it.
func (l *Lock) Release() error {
	unlockErr := unlock(l.file.Fd())
	closeErr := l.file.Close()
	return errors.Join(unlockErr, closeErr)
}

// ProjectLockPath returns the lock file for projectRoot inside dir. The name
// is derived from the absolute project path, so every spelling of the same
// root maps to one lock.
func ProjectLockPath(dir, projectRoot string) (string, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", fmt.Errorf("resolve project root %s: %w", projectRoot, err)
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock"), nil
}
