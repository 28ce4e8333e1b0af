package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/burrow/pkg/adapters/fs"
	"github.com/aretw0/burrow/pkg/adapters/memory"
	"github.com/aretw0/burrow/pkg/adapters/postgres"
	"github.com/aretw0/burrow/pkg/adapters/redis"
	"github.com/aretw0/burrow/pkg/core"
	"github.com/aretw0/burrow/pkg/models"
	"github.com/aretw0/burrow/pkg/storage"
)

// Open builds a ready engine: the backend is created and initialized, then
// the registry is reloaded from it.
// The uri argument is adapter-specific (file path for "fs", DSN for
// "postgres", address for "redis", ignored for "memory").
func Open(ctx context.Context, uri string, opts ...Option) (*storage.Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	backend, err := initBackend(ctx, uri, o)
	if err != nil {
		return nil, err
	}

	catalog := o.catalog
	if catalog == nil {
		catalog = models.DefaultCatalog()
	}

	engine := storage.NewEngine(backend, catalog, o.logger)
	if err := engine.Reload(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}
	return engine, nil
}

func initBackend(ctx context.Context, uri string, o *options) (core.Backend, error) {
	backend := o.backend
	if backend == nil {
		var err error
		backend, err = newBackend(ctx, uri, o)
		if err != nil {
			return nil, err
		}
	}

	if err := backend.Initialize(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}
	return backend, nil
}

func newBackend(ctx context.Context, uri string, o *options) (core.Backend, error) {
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch o.adapter {
	case AdapterFS:
		strict, _ := o.config["strict"].(bool)
		mustExist, _ := o.config["must_exist"].(bool)
		return fs.NewBackend(fs.Config{
			Path:      uri,
			Strict:    strict,
			MustExist: mustExist,
			Logger:    logger,
		})
	case AdapterMemory:
		return memory.New(), nil
	case AdapterPostgres:
		table, _ := o.config["table"].(string)
		maxConns, _ := o.config["max_conns"].(int32)
		return postgres.NewBackend(ctx, postgres.Config{
			DSN:      uri,
			Table:    table,
			MaxConns: maxConns,
			Logger:   logger,
		})
	case AdapterRedis:
		prefix, _ := o.config["key_prefix"].(string)
		password, _ := o.config["password"].(string)
		return redis.NewBackend(redis.Config{
			Addr:     uri,
			Password: password,
			Prefix:   prefix,
			Logger:   logger,
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnknownAdapter, o.adapter)
	}
}
