package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalStoreName is the per-directory data file picked up before the global one.
const LocalStoreName = ".dictnotes.json"

// FindLocalStore recursively looks upwards for a LocalStoreName file.
// If found, returns its absolute path.
func FindLocalStore(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, LocalStoreName)
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

	return "", fmt.Errorf("local store not found")
}
