package platform

import (
	"os"
	"path/filepath"

	"github.com/aretw0/dictnotes/internal/config"
)

// Source names where a data file path came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceLocal   Source = "local"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// ResolveDataPath picks the data file in priority order:
// explicit flag, DICTNOTES_FILE, a .dictnotes.json above workDir, the config file, the default location.
func ResolveDataPath(flagValue, workDir string, cfg *config.Config) (string, Source, error) {
	if flagValue != "" {
		return absPath(config.ExpandTilde(flagValue)), SourceFlag, nil
	}
	if env := os.Getenv(config.EnvDataFile); env != "" {
		return absPath(config.ExpandTilde(env)), SourceEnv, nil
	}
	if workDir != "" {
		if local, err := FindLocalStore(workDir); err == nil {
			return local, SourceLocal, nil
		}
	}
	if cfg != nil && cfg.DataFile != "" {
		return absPath(cfg.DataFile), SourceConfig, nil
	}
	def, err := config.DefaultDataPath()
	if err != nil {
		return "", "", err
	}
	return def, SourceDefault, nil
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
