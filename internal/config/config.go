// Package config handles the user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AppDir is the directory name under XDG_CONFIG_HOME.
	AppDir = "dictnotes"
	// FileName is the config file name.
	FileName = "config.yml"
	// DefaultDataFile is the data file name used when nothing else is configured.
	DefaultDataFile = "notes.json"
	// EnvDataFile overrides the data file path.
	EnvDataFile = "DICTNOTES_FILE"
)

// Config represents configuration stored in ~/.config/dictnotes/config.yml.
type Config struct {
	DataFile string `yaml:"data_file,omitempty" json:"data_file"`
	Format   string `yaml:"format,omitempty" json:"format"`
}

// Dir returns the configuration directory.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/dictnotes.
func Dir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, AppDir), nil
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// DefaultDataPath returns the data file used when nothing overrides it.
func DefaultDataPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultDataFile), nil
}

// Load reads the config file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.DataFile != "" {
		cfg.DataFile = ExpandTilde(cfg.DataFile)
	}
	return &cfg, nil
}

// Save writes the config file, creating its directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
