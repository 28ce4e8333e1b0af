package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrStoreNotFound is returned by FindStore when no store file is found.
var ErrStoreNotFound = errors.New("store file not found")

// FindStore looks for a store file called name in startDir and its parents.
// It returns the absolute path of the nearest match.
func FindStore(startDir, name string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrStoreNotFound
}
