// Package storage implements the registry entities are saved through.
//
// An Engine keeps the live set of registered entities keyed by
// "<Class>.<id>" and flushes the whole set to a core.Backend on Persist.
// The backend decides where records live (file, SQL, key-value, memory).
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/burrow/pkg/core"
)

// Engine implements core.Registry on top of a core.Backend.
type Engine struct {
	mu      sync.RWMutex
	backend core.Backend
	catalog core.Catalog
	logger  *slog.Logger
	objects map[string]core.Entity

	lastPersist *time.Time
	lastReload  *time.Time
	watching    bool
}

// NewEngine creates an engine. A nil logger discards log output.
func NewEngine(backend core.Backend, catalog core.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		backend: backend,
		catalog: catalog,
		logger:  logger,
		objects: make(map[string]core.Entity),
	}
}

// Register records or replaces e under "<Class>.<id>".
func (s *Engine) Register(ctx context.Context, e core.Entity) error {
	if e.Meta().ID == "" {
		return core.ErrMissingID
	}
	key := core.Key(e)

	s.mu.Lock()
	s.objects[key] = e
	s.mu.Unlock()

	s.logger.Debug("entity registered", "key", key)
	return nil
}

// Persist encodes every registered entity and replaces the backend contents.
func (s *Engine) Persist(ctx context.Context) error {
	s.mu.RLock()
	records := make(map[string]core.Record, len(s.objects))
	for key, e := range s.objects {
		records[key] = core.Encode(e)
	}
	s.mu.RUnlock()

	if err := s.backend.Store(ctx, records); err != nil {
		return fmt.Errorf("failed to persist %d records: %w", len(records), err)
	}

	s.mu.Lock()
	now := time.Now()
	s.lastPersist = &now
	s.mu.Unlock()

	s.logger.Info("registry persisted", "records", len(records))
	return nil
}

// AttributeTypes returns the declared attribute kinds of class.
func (s *Engine) AttributeTypes(class string) (map[string]core.Kind, error) {
	e, err := s.catalog.New(class)
	if err != nil {
		return nil, err
	}
	return core.AttributeTypes(e), nil
}

// Reload replaces the registered set with the backend contents.
// Nothing is replaced when any record fails to decode.
func (s *Engine) Reload(ctx context.Context) error {
	records, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	objects := make(map[string]core.Entity, len(records))
	for key, rec := range records {
		e, err := core.FromRecord(s.catalog, rec)
		if err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		if k := core.Key(e); k != key {
			s.logger.Warn("record stored under a foreign key", "stored", key, "key", k)
			key = k
		}
		objects[key] = e
	}

	s.mu.Lock()
	s.objects = objects
	now := time.Now()
	s.lastReload = &now
	s.mu.Unlock()

	s.logger.Info("registry reloaded", "records", len(objects))
	return nil
}

// Get returns the entity registered for class and id.
func (s *Engine) Get(class, id string) (core.Entity, error) {
	key := class + "." + id

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.catalog.New(class); err != nil {
		return nil, err
	}
	e, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return e, nil
}

// All returns the registered entities whose key matches pattern, sorted by key.
// Patterns use doublestar syntax against "<Class>.<id>" (e.g. "Review.*");
// an empty pattern matches everything.
func (s *Engine) All(pattern string) ([]core.Entity, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	s.mu.RLock()
	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		if pattern == "" || matches(pattern, key) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	result := make([]core.Entity, 0, len(keys))
	for _, key := range keys {
		result = append(result, s.objects[key])
	}
	s.mu.RUnlock()

	return result, nil
}

// Count returns the number of registered entities of class,
// or of every class when class is empty.
func (s *Engine) Count(class string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if class == "" {
		return len(s.objects)
	}
	n := 0
	for key := range s.objects {
		if strings.HasPrefix(key, class+".") {
			n++
		}
	}
	return n
}

// Delete unregisters class/id and persists the remaining set.
func (s *Engine) Delete(ctx context.Context, class, id string) error {
	key := class + "." + id

	s.mu.Lock()
	if _, ok := s.objects[key]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	delete(s.objects, key)
	s.mu.Unlock()

	s.logger.Debug("entity removed", "key", key)
	return s.Persist(ctx)
}

// Close persists the registered set and releases the backend.
func (s *Engine) Close(ctx context.Context) error {
	if err := s.Persist(ctx); err != nil {
		return err
	}
	return s.backend.Close()
}

// Release frees the backend without persisting, for sessions that only read.
func (s *Engine) Release() error {
	return s.backend.Close()
}

func matches(pattern, key string) bool {
	ok, err := doublestar.Match(pattern, key)
	return err == nil && ok
}

var _ core.Registry = (*Engine)(nil)
