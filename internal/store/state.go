package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

const (
	stateDir  = ".askdocs"
	stateFile = "current_store"
)

// statePath returns the path to the current-store state file, creating
// the state directory if needed. Overridable home lookup keeps tests
// away from the real home directory.
var userHomeDir = os.UserHomeDir

func statePath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	dir := filepath.Join(home, stateDir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating state directory: %w", err)
	}

	return filepath.Join(dir, stateFile), nil
}

// withStateLock runs fn while holding the advisory lock next to the
// state file, so two askdocs processes cannot interleave writes.
func withStateLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking state file: %w", err)
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}

// LoadCurrent loads the store name saved by a previous run. A missing
// state file returns ("", nil); that is not an error.
func LoadCurrent() (string, error) {
	path, err := statePath()
	if err != nil {
		return "", err
	}

	var name string
	err = withStateLock(path, func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return fmt.Errorf("reading state file: %w", err)
		}
		name = strings.TrimSpace(string(data))
		return nil
	})
	return name, err
}

// SaveCurrent records the selected store name for the next run.
func SaveCurrent(name string) error {
	path, err := statePath()
	if err != nil {
		return err
	}

	return withStateLock(path, func() error {
		if err := os.WriteFile(path, []byte(name+"\n"), 0o600); err != nil {
			return fmt.Errorf("writing state file: %w", err)
		}
		return nil
	})
}

// ClearCurrent removes the saved store name. Idempotent: clearing when
// nothing is saved is not an error.
func ClearCurrent() error {
	path, err := statePath()
	if err != nil {
		return err
	}

	return withStateLock(path, func() error {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing state file: %w", err)
		}
		return nil
	})
}
