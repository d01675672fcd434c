package platform

import (
	"fmt"

	"github.com/aretw0/dictnotes/pkg/adapters/fs"
	"github.com/aretw0/dictnotes/pkg/core"
)

// New builds a Service over the data file at path.
//
//	svc, err := dictnotes.New("~/.config/dictnotes/notes.json", dictnotes.WithLogger(logger))
func New(path string, opts ...Option) (*core.Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := initRepository(path, o)
	if err != nil {
		return nil, err
	}

	return core.NewService(repo,
		core.WithServiceLogger(o.logger),
		core.WithClock(o.clock),
	), nil
}

// Init returns the configured repository without wrapping it in a service.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(path, o)
}

func initRepository(path string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	switch o.adapter {
	case "fs":
		if path == "" {
			return nil, fmt.Errorf("data file path cannot be empty")
		}
		return fs.NewRepository(fs.Config{
			Path:         path,
			Logger:       o.logger,
			Serializer:   o.serializer,
			Debounce:     o.debounce,
			ErrorHandler: o.errorHandler,
		}), nil
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}
}
