// Package postgres stores records in a PostgreSQL table through pgx.
//
// Each record is one row keyed by "<Class>.<id>" with the flat record kept
// as jsonb. Store replaces the table contents in a single transaction.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aretw0/burrow/pkg/core"
)

// DefaultTable is the table used when Config.Table is empty.
const DefaultTable = "burrow_records"

// Config holds the configuration for the PostgreSQL backend.
type Config struct {
	DSN      string
	Table    string
	MaxConns int32
	Logger   *slog.Logger
}

// Backend implements core.Backend on a pgx connection pool.
type Backend struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewPool opens a pgx pool with conservative defaults.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres config: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MinConns = 1
	config.MaxConnIdleTime = 5 * time.Minute
	config.MaxConnLifetime = 30 * time.Minute
	config.ConnConfig.RuntimeParams["timezone"] = "UTC"

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}
	return pool, nil
}

// NewBackend connects to PostgreSQL.
func NewBackend(ctx context.Context, config Config) (*Backend, error) {
	pool, err := NewPool(ctx, config.DSN, config.MaxConns)
	if err != nil {
		return nil, err
	}
	return NewBackendWithPool(pool, config), nil
}

// NewBackendWithPool wraps an existing pool. Close closes the pool.
func NewBackendWithPool(pool *pgxpool.Pool, config Config) *Backend {
	table := config.Table
	if table == "" {
		table = DefaultTable
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{pool: pool, table: table, logger: logger}
}

// Initialize creates the records table if needed.
func (b *Backend) Initialize(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key     TEXT PRIMARY KEY,
			class   TEXT NOT NULL,
			id      TEXT NOT NULL,
			payload JSONB NOT NULL
		)`, b.ident())
	if _, err := b.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", b.table, err)
	}
	return nil
}

// Load returns every stored record.
func (b *Backend) Load(ctx context.Context) (map[string]core.Record, error) {
	rows, err := b.pool.Query(ctx, fmt.Sprintf(`SELECT key, payload FROM %s`, b.ident()))
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records := make(map[string]core.Record)
	for rows.Next() {
		var (
			key     string
			payload []byte
		)
		if err := rows.Scan(&key, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec, err := decodePayload(payload)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", key, err)
		}
		records[key] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}
	return records, nil
}

// Store replaces the table contents with records.
func (b *Backend) Store(ctx context.Context, records map[string]core.Record) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	batch.Queue(fmt.Sprintf(`DELETE FROM %s`, b.ident()))
	insert := fmt.Sprintf(`INSERT INTO %s (key, class, id, payload) VALUES ($1, $2, $3, $4)`, b.ident())
	for key, rec := range records {
		payload, err := encodePayload(rec)
		if err != nil {
			return fmt.Errorf("record %s: %w", key, err)
		}
		batch.Queue(insert, key, rec.Class(), rec.ID(), payload)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	b.logger.Debug("records stored", "table", b.table, "records", len(records))
	return nil
}

// Close closes the pool.
func (b *Backend) Close() error {
	b.pool.Close()
	return nil
}

// ComponentType implements introspection.Component.
func (b *Backend) ComponentType() string {
	return "postgres"
}

func (b *Backend) ident() string {
	return pgx.Identifier{b.table}.Sanitize()
}

func encodePayload(rec core.Record) ([]byte, error) {
	return json.Marshal(rec)
}

func decodePayload(payload []byte) (core.Record, error) {
	rec := make(core.Record)
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

var _ core.Backend = (*Backend)(nil)
