// Package fs stores the whole record set in a single file.
//
// The file format follows the extension of Config.Path (".json", ".yaml",
// ".yml"). Writes replace the file atomically and Watch reports changes made
// to it by other processes.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/aretw0/burrow/pkg/core"
)

// DefaultPath is the store file used when Config.Path is empty.
const DefaultPath = "file.json"

// Config holds the configuration for the file backend.
type Config struct {
	Path        string
	Strict      bool // decode JSON numbers as json.Number
	MustExist   bool // fail Initialize when the store file is absent
	Logger      *slog.Logger
	Serializers map[string]Serializer // overrides by extension
}

// Backend implements core.Backend over a single file.
type Backend struct {
	mu          sync.RWMutex
	path        string
	config      Config
	serializer  Serializer
	serializers map[string]Serializer
	watching    bool
	loads       int
	stores      int
	ignored     int
	written     uint64 // xxhash of the last content this backend wrote
}

// NewBackend creates a file backend. The serializer is chosen by extension.
func NewBackend(config Config) (*Backend, error) {
	if config.Path == "" {
		config.Path = DefaultPath
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}

	abs, err := filepath.Abs(config.Path)
	if err != nil {
		return nil, err
	}

	serializers := DefaultSerializers(config.Strict)
	for ext, s := range config.Serializers {
		serializers[ext] = s
	}

	ext := filepath.Ext(abs)
	serializer, ok := serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer for %q store files", ext)
	}

	return &Backend{
		path:        abs,
		config:      config,
		serializer:  serializer,
		serializers: serializers,
	}, nil
}

// Path returns the absolute path of the store file.
func (b *Backend) Path() string {
	return b.path
}

// Initialize ensures the store directory exists.
func (b *Backend) Initialize(ctx context.Context) error {
	if b.config.MustExist {
		info, err := os.Stat(b.path)
		if os.IsNotExist(err) {
			return fmt.Errorf("store file does not exist: %s", b.path)
		}
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("store path is a directory: %s", b.path)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	return nil
}

// Load reads the store file. A missing file is an empty store.
func (b *Backend) Load(ctx context.Context) (map[string]core.Record, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return make(map[string]core.Record), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	records, err := b.serializer.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}

	b.mu.Lock()
	b.loads++
	b.mu.Unlock()

	b.config.Logger.Debug("store loaded", "path", b.path, "records", len(records))
	return records, nil
}

// Store serializes records and atomically replaces the store file.
func (b *Backend) Store(ctx context.Context, records map[string]core.Record) error {
	data, err := b.serializer.Encode(records)
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	b.mu.Lock()
	b.written = xxhash.Sum64(data)
	b.mu.Unlock()

	if err := replaceFile(b.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}

	b.mu.Lock()
	b.stores++
	b.mu.Unlock()

	b.config.Logger.Debug("store written", "path", b.path, "records", len(records))
	return nil
}

// ownWrite reports whether the store file holds exactly what Store last wrote.
func (b *Backend) ownWrite() bool {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stores == 0 || xxhash.Sum64(data) != b.written {
		return false
	}
	b.ignored++
	return true
}

// Close implements core.Backend. The file backend holds no open handles.
func (b *Backend) Close() error {
	return nil
}

var _ core.Backend = (*Backend)(nil)
var _ core.Watchable = (*Backend)(nil)
