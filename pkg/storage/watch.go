package storage

import (
	"context"
	"errors"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/burrow/pkg/core"
)

// ErrNotWatchable is returned by Watch when the backend cannot report changes.
var ErrNotWatchable = errors.New("backend does not support watching")

// Watch reloads the registry whenever the backend reports an external change.
// Every handled event is forwarded on the returned channel, which is closed
// when ctx is done or the backend stops watching.
func (s *Engine) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := s.backend.(core.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}

	events, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan core.Event)
	s.setWatching(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		defer s.setWatching(false)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				if err := s.Reload(ctx); err != nil {
					s.logger.Error("reload after change failed", "event", e.String(), "error", err)
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})

	return out, nil
}

func (s *Engine) setWatching(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watching = active
}
