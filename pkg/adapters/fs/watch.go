package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/burrow/pkg/core"
)

// debounceWindow coalesces the burst of events a single rename produces.
const debounceWindow = 50 * time.Millisecond

// Watch reports changes to the store file until ctx is done.
// Changes that leave the file as this backend last wrote it are not reported.
// The parent directory is watched because writers replace the file by rename.
func (b *Backend) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(b.path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(b.path), err)
	}

	events := make(chan core.Event)
	b.setWatcherActive(true)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(events)
		defer b.setWatcherActive(false)
		defer watcher.Close()
		return b.watchLoop(ctx, watcher, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		b.config.Logger.Error("watcher stopped", "path", b.path, "error", err)
	}))

	return events, nil
}

func (b *Backend) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, events chan<- core.Event) error {
	var (
		pending core.Event
		fire    <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			b.config.Logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			eType := b.mapEventType(event)
			if eType == "" {
				continue
			}
			pending = core.Event{Type: eType, Source: b.path, Timestamp: time.Now().Unix()}
			fire = time.After(debounceWindow)

		case <-fire:
			fire = nil
			if b.ownWrite() {
				b.config.Logger.Debug("ignoring own write", "path", b.path)
				continue
			}
			select {
			case events <- pending:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			b.config.Logger.Error("fsnotify error", "error", err)
		}
	}
}

// mapEventType keeps events for the store file itself and classifies them.
func (b *Backend) mapEventType(event fsnotify.Event) core.EventType {
	if isTempFile(event.Name) || filepath.Clean(event.Name) != b.path {
		return ""
	}
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}
