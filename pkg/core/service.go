package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Service handles the business logic for notes.
// Every operation is one scoped load → change → save cycle against the repository.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time

	mu  sync.RWMutex
	ops int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger used by the service.
func WithServiceLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a new Service.
func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddNote creates a note and persists it.
func (s *Service) AddNote(ctx context.Context, title string, tags []string, description string) (Note, error) {
	var added Note
	err := s.mutate(ctx, "add", func(c *Collection) error {
		n, err := c.Add(title, tags, description, s.now())
		added = n
		return err
	})
	if err != nil {
		return Note{}, err
	}
	s.logger.Debug("note added", "id", added.ID, "tags", added.Tags)
	return added, nil
}

// GetNote retrieves a note.
func (s *Service) GetNote(ctx context.Context, id string) (Note, error) {
	if err := validateID(id); err != nil {
		return Note{}, err
	}
	c, err := s.load(ctx)
	if err != nil {
		return Note{}, err
	}
	return c.Get(id)
}

// UpdateNote merges the patch into an existing note and persists it.
func (s *Service) UpdateNote(ctx context.Context, id string, patch NotePatch) (Note, error) {
	if err := validateID(id); err != nil {
		return Note{}, err
	}
	var updated Note
	err := s.mutate(ctx, "update", func(c *Collection) error {
		n, err := c.Update(id, patch, s.now())
		updated = n
		return err
	})
	return updated, err
}

// TagNote adds tags to a note.
func (s *Service) TagNote(ctx context.Context, id string, tags ...string) (Note, error) {
	if len(NormalizeTags(tags)) == 0 {
		return Note{}, fmt.Errorf("%w: no tags given", ErrInvalidNote)
	}
	return s.UpdateNote(ctx, id, NotePatch{AddTags: tags})
}

// UntagNote removes tags from a note.
func (s *Service) UntagNote(ctx context.Context, id string, tags ...string) (Note, error) {
	if len(NormalizeTags(tags)) == 0 {
		return Note{}, fmt.Errorf("%w: no tags given", ErrInvalidNote)
	}
	return s.UpdateNote(ctx, id, NotePatch{RemoveTags: tags})
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.mutate(ctx, "delete", func(c *Collection) error {
		return c.Delete(id)
	})
}

// ListNotes retrieves all notes in insertion order.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.All(), nil
}

// ListByTag retrieves the notes carrying tag, in insertion order.
func (s *Service) ListByTag(ctx context.Context, tag string) ([]Note, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.ListByTag(tag), nil
}

// MatchTags retrieves the notes with a tag matching the glob pattern.
func (s *Service) MatchTags(ctx context.Context, pattern string) ([]Note, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.MatchTags(pattern)
}

// Tags retrieves every tag in use with its note count.
func (s *Service) Tags(ctx context.Context) ([]TagCount, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Tags(), nil
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx)
}

func (s *Service) load(ctx context.Context) (*Collection, error) {
	s.count()
	return s.repo.Load(ctx)
}

// mutate loads the collection, applies fn and flushes only when fn succeeds.
func (s *Service) mutate(ctx context.Context, op string, fn func(*Collection) error) error {
	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Debug("collection flushed", "op", op, "notes", c.Len())
	return nil
}

func (s *Service) count() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops++
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: note ID cannot be empty", ErrInvalidNote)
	}
	return nil
}
