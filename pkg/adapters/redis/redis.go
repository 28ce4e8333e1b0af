// Package redis stores records in a single Redis hash.
//
// The hash lives at "<prefix>:objects"; each field is a "<Class>.<id>" key
// and each value the JSON-encoded flat record.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/aretw0/burrow/pkg/core"
)

// DefaultPrefix is the key prefix used when Config.Prefix is empty.
const DefaultPrefix = "burrow"

// Config holds the configuration for the Redis backend.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	Logger   *slog.Logger
}

// Backend implements core.Backend on a Redis hash.
type Backend struct {
	client redis.UniversalClient
	key    string
	logger *slog.Logger
}

// NewBackend creates a client for config.Addr.
func NewBackend(config Config) *Backend {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,

		DialTimeout:     5 * time.Second,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		MaxRetries:      3,
		MinRetryBackoff: 50 * time.Millisecond,
		MaxRetryBackoff: 500 * time.Millisecond,
	})
	return NewBackendWithClient(client, config)
}

// NewBackendWithClient wraps an existing client. Close closes the client.
func NewBackendWithClient(client redis.UniversalClient, config Config) *Backend {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		client: client,
		key:    objectsKey(config.Prefix),
		logger: logger,
	}
}

// Initialize checks that the server is reachable.
func (b *Backend) Initialize(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Load returns every record in the hash.
func (b *Backend) Load(ctx context.Context) (map[string]core.Record, error) {
	values, err := b.client.HGetAll(ctx, b.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.key, err)
	}

	records := make(map[string]core.Record, len(values))
	for key, value := range values {
		rec := make(core.Record)
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		records[key] = rec
	}
	return records, nil
}

// Store replaces the hash atomically (MULTI/EXEC).
func (b *Backend) Store(ctx context.Context, records map[string]core.Record) error {
	fields, err := encodeFields(records)
	if err != nil {
		return err
	}

	_, err = b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, b.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, b.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", b.key, err)
	}

	b.logger.Debug("records stored", "key", b.key, "records", len(records))
	return nil
}

// Close closes the client.
func (b *Backend) Close() error {
	return b.client.Close()
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "redis"
}

func objectsKey(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + ":objects"
}

func encodeFields(records map[string]core.Record) (map[string]any, error) {
	fields := make(map[string]any, len(records))
	for key, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		fields[key] = string(data)
	}
	return fields, nil
}

var _ core.Backend = (*Backend)(nil)
