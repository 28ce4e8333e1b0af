package fs

import (
	"slices"

	"github.com/aretw0/introspection"
)

// BackendState exposes internal state for observability.
type BackendState struct {
	Path          string   `json:"path"`
	Strict        bool     `json:"strict"`
	Serializers   []string `json:"serializers"`
	WatcherActive bool     `json:"watcher_active"`
	Loads         int      `json:"loads"`
	Stores        int      `json:"stores"`
	IgnoredWrites int      `json:"ignored_writes"`
}

// State implements introspection.Introspectable.
func (b *Backend) State() any {
	b.mu.RLock()
	defer b.mu.RUnlock()

	serializers := make([]string, 0, len(b.serializers))
	for ext := range b.serializers {
		serializers = append(serializers, ext)
	}
	slices.Sort(serializers)

	return BackendState{
		Path:          b.path,
		Strict:        b.config.Strict,
		Serializers:   serializers,
		WatcherActive: b.watching,
		Loads:         b.loads,
		Stores:        b.stores,
		IgnoredWrites: b.ignored,
	}
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "fs"
}

var _ introspection.Introspectable = (*Backend)(nil)
var _ introspection.Component = (*Backend)(nil)

func (b *Backend) setWatcherActive(active bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.watching = active
}
