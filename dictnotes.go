package dictnotes

import (
	"log/slog"
	"time"

	"github.com/aretw0/dictnotes/internal/config"
	"github.com/aretw0/dictnotes/internal/platform"
	"github.com/aretw0/dictnotes/pkg/adapters/fs"
	"github.com/aretw0/dictnotes/pkg/core"
)

// Version of the dictnotes module.
const Version = "0.1.0"

// --- Types ---

// Note is a public alias for the domain note.
type Note = core.Note

// NotePatch is a public alias for the partial update structure.
type NotePatch = core.NotePatch

// Service is a public alias for the note service.
type Service = core.Service

// --- Configuration ---

// Option defines a functional option for configuring the service.
type Option = platform.Option

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter allows specifying the storage adapter to use by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithSerializer forces the data file format.
func WithSerializer(s fs.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithWatchDebounce sets the settle time for Watch.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// WithWatcherErrorHandler registers a callback for errors raised while watching.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New creates a note Service over the data file at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init returns the storage adapter for path without a service around it.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// --- Paths ---

// ResolveDataPath determines the data file from the flag value, the
// environment, a local .dictnotes.json, the config file and the default location.
func ResolveDataPath(flagValue, workDir string) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	path, _, err := platform.ResolveDataPath(flagValue, workDir, cfg)
	return path, err
}
