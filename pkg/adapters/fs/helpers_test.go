package fs_test

import (
	"os"
	"path/filepath"
)

func writeRaw(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
