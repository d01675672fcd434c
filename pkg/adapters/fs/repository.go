package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/dictnotes/pkg/core"
)

// DefaultFilePerm is applied to data files that do not exist yet.
const DefaultFilePerm os.FileMode = 0644

// Repository implements core.Repository over a single data file.
type Repository struct {
	Path       string
	config     Config
	serializer Serializer

	mu            sync.RWMutex
	loads         int
	saves         int
	lastLoad      *time.Time
	lastSave      *time.Time
	watcherActive bool
}

// Config holds the configuration for the file repository.
type Config struct {
	Path   string
	Logger *slog.Logger
	// Perm is used when the data file is created. Existing files keep their mode.
	Perm os.FileMode
	// Serializer overrides the format picked from the file extension.
	Serializer Serializer
	// Debounce groups bursts of filesystem events while watching. Zero means 50ms.
	Debounce time.Duration
	// ErrorHandler receives errors raised inside the watch loop.
	ErrorHandler func(error)
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Perm == 0 {
		config.Perm = DefaultFilePerm
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	serializer := config.Serializer
	if serializer == nil {
		serializer = SerializerFor(config.Path)
	}
	return &Repository{
		Path:       config.Path,
		config:     config,
		serializer: serializer,
	}
}

// Load reads the data file.
// A missing or blank file yields an empty collection; unparsable content yields core.ErrCorruptData.
func (r *Repository) Load(ctx context.Context) (*core.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		r.config.Logger.Debug("data file missing, starting empty", "path", r.Path)
		r.recordLoad()
		return core.NewCollection(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", core.ErrIO, r.Path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		r.recordLoad()
		return core.NewCollection(), nil
	}

	c, err := r.serializer.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrCorruptData, r.Path, err)
	}

	r.config.Logger.Debug("collection loaded", "path", r.Path, "notes", c.Len(), "format", r.serializer.Name())
	r.recordLoad()
	return c, nil
}

// Save replaces the data file atomically, creating parent directories as needed.
func (r *Repository) Save(ctx context.Context, c *core.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: nil collection", core.ErrInvalidNote)
	}

	data, err := r.serializer.Serialize(c)
	if err != nil {
		return fmt.Errorf("failed to serialize collection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.Path), 0755); err != nil {
		return fmt.Errorf("%w: create directory for %s: %w", core.ErrIO, r.Path, err)
	}

	perm := r.config.Perm
	if info, err := os.Stat(r.Path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := writeFileAtomic(r.Path, data, perm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	r.config.Logger.Debug("collection saved", "path", r.Path, "notes", c.Len(), "bytes", len(data))
	r.recordSave()
	return nil
}

func (r *Repository) recordLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.loads++
	r.lastLoad = &now
}

func (r *Repository) recordSave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.saves++
	r.lastSave = &now
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
