package burrow

import (
	"context"
	"log/slog"

	"github.com/aretw0/burrow/internal/platform"
	"github.com/aretw0/burrow/pkg/core"
	"github.com/aretw0/burrow/pkg/storage"
	"github.com/aretw0/burrow/pkg/typed"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// --- Types ---

// Engine is the storage registry returned by Open.
type Engine = storage.Engine

// Entity is the interface shared by every stored type.
type Entity = core.Entity

// Record is the flat, class-tagged form of an entity.
type Record = core.Record

// Repository is a public alias for the typed repository.
type Repository[E any, P interface {
	*E
	core.Entity
}] = typed.Repository[E, P]

// --- Configuration ---

// Option defines a functional option for configuring burrow.
type Option = platform.Option

// Adapter names.
const (
	AdapterFS       = platform.AdapterFS
	AdapterMemory   = platform.AdapterMemory
	AdapterPostgres = platform.AdapterPostgres
	AdapterRedis    = platform.AdapterRedis
)

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithLogger sets the logger for the engine and its backend.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithBackend allows injecting a custom storage backend.
func WithBackend(backend core.Backend) Option {
	return platform.WithBackend(backend)
}

// WithCatalog replaces the set of known entity classes.
func WithCatalog(catalog core.Catalog) Option {
	return platform.WithCatalog(catalog)
}

// WithStrict preserves large JSON integers in the fs adapter.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithMustExist ensures the store file already exists (fs adapter).
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithKeyPrefix sets the redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return platform.WithKeyPrefix(prefix)
}

// WithPassword sets the redis password.
func WithPassword(password string) Option {
	return platform.WithPassword(password)
}

// WithTable sets the postgres table name.
func WithTable(table string) Option {
	return platform.WithTable(table)
}

// WithMaxConns caps the postgres pool size.
func WithMaxConns(n int32) Option {
	return platform.WithMaxConns(n)
}

// --- Factory ---

// Open creates a storage engine over the selected adapter and loads its
// contents. uri is the file path, DSN or address, depending on the adapter.
func Open(ctx context.Context, uri string, opts ...Option) (*Engine, error) {
	return platform.Open(ctx, uri, opts...)
}

// FindStore returns the nearest file called name in dir or its parents.
func FindStore(dir, name string) (string, error) {
	return platform.FindStore(dir, name)
}

// Save advances the entity's UpdatedAt, registers it and persists the registry.
func Save(ctx context.Context, r core.Registry, e Entity) error {
	return core.Save(ctx, r, e)
}

// NewRepository creates a type-safe wrapper around an engine.
func NewRepository[E any, P interface {
	*E
	core.Entity
}](engine *Engine) *Repository[E, P] {
	return typed.NewRepository[E, P](engine)
}
