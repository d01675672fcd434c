package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/dictnotes/pkg/adapters/fs"
	"github.com/aretw0/dictnotes/pkg/core"
)

// options holds the internal configuration for the notes service.
type options struct {
	repository   core.Repository
	logger       *slog.Logger
	adapter      string
	serializer   fs.Serializer
	debounce     time.Duration
	errorHandler func(error)
	clock        func() time.Time
}

// Option defines a functional option for configuring the notes service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
	}
}

// WithLogger sets the logger for the service and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default file adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter allows specifying the storage adapter to use by name (e.g. "fs").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithSerializer forces a data file format instead of picking it from the extension.
func WithSerializer(s fs.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithWatchDebounce sets how long Watch waits for a burst of file events to settle.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithWatcherErrorHandler registers a callback to handle errors occurring during the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithClock overrides the time source used to stamp notes.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.clock = now
	}
}
