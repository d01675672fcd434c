package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/dictnotes/pkg/core"
)

// Watch reports note-level changes made to the data file by any process.
// The parent directory is watched because saves replace the file by rename.
// The returned channel is closed once ctx is done.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	dir := filepath.Dir(r.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create directory for %s: %w", core.ErrIO, r.Path, err)
	}

	snapshot, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 16)
	r.setWatcherActive(true)
	r.config.Logger.Debug("watching data file", "path", r.Path)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer r.setWatcherActive(false)
		defer watcher.Close()
		return r.watchLoop(ctx, watcher, snapshot, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		r.reportWatchError(fmt.Errorf("watch loop: %w", err))
	}))

	return events, nil
}

func (r *Repository) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, prev *core.Collection, events chan<- core.Event) error {
	target := filepath.Clean(r.Path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			r.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			pending = time.After(r.config.Debounce)

		case <-pending:
			pending = nil
			next, err := r.Load(ctx)
			if err != nil {
				// Usually a half-written file from an editor; keep the last good snapshot.
				r.reportWatchError(err)
				continue
			}
			for _, e := range diffCollections(prev, next, time.Now()) {
				select {
				case events <- e:
				case <-ctx.Done():
					return nil
				}
			}
			prev = next

		case wErr, ok := <-watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			r.reportWatchError(wErr)
		}
	}
}

func (r *Repository) reportWatchError(err error) {
	r.config.Logger.Error("watch error", "error", err)
	if r.config.ErrorHandler != nil {
		r.config.ErrorHandler(err)
	}
}

// diffCollections lists creations and modifications in next's order, then deletions in prev's order.
func diffCollections(prev, next *core.Collection, now time.Time) []core.Event {
	ts := now.Unix()
	var out []core.Event

	for _, n := range next.All() {
		old, err := prev.Get(n.ID)
		switch {
		case err != nil:
			out = append(out, core.Event{Type: core.EventCreate, ID: n.ID, Title: n.Title, Timestamp: ts})
		case !old.Equal(n):
			out = append(out, core.Event{Type: core.EventModify, ID: n.ID, Title: n.Title, Timestamp: ts})
		}
	}
	for _, n := range prev.All() {
		if _, err := next.Get(n.ID); err != nil {
			out = append(out, core.Event{Type: core.EventDelete, ID: n.ID, Title: n.Title, Timestamp: ts})
		}
	}
	return out
}
