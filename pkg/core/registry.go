package core

import "context"

// Registry is the storage collaborator entities are saved through.
type Registry interface {
	// Register records or replaces e under its key.
	Register(ctx context.Context, e Entity) error
	// Persist flushes every registered entity to the backend.
	Persist(ctx context.Context) error
	// AttributeTypes returns the declared attribute kinds of a class.
	AttributeTypes(class string) (map[string]Kind, error)
}

// Backend defines the contract for durable record storage.
// Adhering to this interface keeps the registry independent of the
// underlying storage mechanism (file, SQL, key-value, memory).
type Backend interface {
	// Initialize ensures the underlying storage is ready (directories, schema).
	Initialize(ctx context.Context) error
	// Load returns every stored record keyed by "<Class>.<id>".
	Load(ctx context.Context) (map[string]Record, error)
	// Store replaces the stored set with records.
	Store(ctx context.Context, records map[string]Record) error
	// Close releases resources held by the backend.
	Close() error
}

// Watchable is implemented by backends that can report external changes.
type Watchable interface {
	Watch(ctx context.Context) (<-chan Event, error)
}

// Catalog resolves class names to empty entities.
type Catalog interface {
	New(class string) (Entity, error)
	Classes() []string
}
