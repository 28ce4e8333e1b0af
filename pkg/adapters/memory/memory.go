// Package memory provides an in-process core.Backend.
// Records are copied on the way in and out so callers never share maps
// with the backend.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/aretw0/burrow/pkg/core"
)

// Backend keeps the stored record set in memory.
type Backend struct {
	mu      sync.RWMutex
	records map[string]core.Record
	stores  int
}

// New creates an empty memory backend.
func New() *Backend {
	return &Backend{records: make(map[string]core.Record)}
}

func (b *Backend) Initialize(ctx context.Context) error { return nil }

func (b *Backend) Load(ctx context.Context) (map[string]core.Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clone(b.records), nil
}

func (b *Backend) Store(ctx context.Context, records map[string]core.Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = clone(records)
	b.stores++
	return nil
}

func (b *Backend) Close() error { return nil }

// Stores reports how many times Store was called.
func (b *Backend) Stores() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stores
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "memory"
}

func clone(in map[string]core.Record) map[string]core.Record {
	out := make(map[string]core.Record, len(in))
	for k, rec := range in {
		out[k] = maps.Clone(rec)
	}
	return out
}

var _ core.Backend = (*Backend)(nil)
