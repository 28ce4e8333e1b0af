package platform

import (
	"log/slog"

	"github.com/aretw0/burrow/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS       = "fs"
	AdapterMemory   = "memory"
	AdapterPostgres = "postgres"
	AdapterRedis    = "redis"
)

// options holds the internal configuration for opening an engine.
type options struct {
	backend core.Backend
	catalog core.Catalog
	logger  *slog.Logger
	adapter string
	config  map[string]interface{}
}

// Option defines a functional option for configuring burrow.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		config:  make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the engine and its backend.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBackend injects a ready backend (e.g. mock, custom store).
// If provided, the adapter named by WithAdapter is skipped.
func WithBackend(backend core.Backend) Option {
	return func(o *options) {
		o.backend = backend
	}
}

// WithCatalog replaces the default entity catalog.
func WithCatalog(catalog core.Catalog) Option {
	return func(o *options) {
		o.catalog = catalog
	}
}

// WithAdapter selects the storage adapter by name ("fs", "memory",
// "postgres", "redis"). Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithStrict makes the fs adapter decode JSON numbers as json.Number
// to preserve the precision of large integers.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithMustExist makes the fs adapter fail when the store file is absent.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithKeyPrefix sets the redis key prefix. Defaults to "burrow".
func WithKeyPrefix(prefix string) Option {
	return func(o *options) {
		o.config["key_prefix"] = prefix
	}
}

// WithPassword sets the redis password.
func WithPassword(password string) Option {
	return func(o *options) {
		o.config["password"] = password
	}
}

// WithTable sets the postgres table. Defaults to "burrow_records".
func WithTable(table string) Option {
	return func(o *options) {
		o.config["table"] = table
	}
}

// WithMaxConns caps the postgres pool size.
func WithMaxConns(n int32) Option {
	return func(o *options) {
		o.config["max_conns"] = n
	}
}
