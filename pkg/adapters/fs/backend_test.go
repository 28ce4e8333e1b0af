package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/burrow/pkg/adapters/fs"
	"github.com/aretw0/burrow/pkg/core"
	"github.com/aretw0/burrow/pkg/models"
	"github.com/aretw0/burrow/pkg/storage"
)

func setupBackend(t *testing.T, name string, strict bool) *fs.Backend {
	t.Helper()
	backend, err := fs.NewBackend(fs.Config{
		Path:   filepath.Join(t.TempDir(), name),
		Strict: strict,
	})
	require.NoError(t, err)
	require.NoError(t, backend.Initialize(context.Background()))
	return backend
}

func TestBackend_FileLayout(t *testing.T) {
	ctx := context.Background()
	backend := setupBackend(t, "file.json", false)
	engine := storage.NewEngine(backend, models.DefaultCatalog(), nil)

	r := models.NewReview()
	r.PlaceID = "p-1"
	r.Text = "cozy"
	require.NoError(t, core.Save(ctx, engine, r))

	data, err := os.ReadFile(backend.Path())
	require.NoError(t, err)

	var raw map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	rec, ok := raw["Review."+r.ID]
	require.True(t, ok, "store keys: %v", raw)
	assert.Equal(t, "Review", rec["__class__"])
	assert.Equal(t, r.ID, rec["id"])
	assert.Equal(t, core.FormatTime(r.CreatedAt), rec["created_at"])
	assert.Equal(t, core.FormatTime(r.UpdatedAt), rec["updated_at"])
	assert.Equal(t, "p-1", rec["place_id"])
	assert.Equal(t, "cozy", rec["text"])
}

func TestBackend_RoundTrip(t *testing.T) {
	for _, name := range []string{"file.json", "file.yaml", "file.yml"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			backend := setupBackend(t, name, false)
			engine := storage.NewEngine(backend, models.DefaultCatalog(), nil)

			p := models.NewPlace()
			p.Name = "Cabin"
			p.MaxGuest = 6
			p.Latitude = -23.55
			require.NoError(t, core.Set(p, "pets", "allowed"))
			require.NoError(t, core.Save(ctx, engine, p))

			reopened := storage.NewEngine(backend, models.DefaultCatalog(), nil)
			require.NoError(t, reopened.Reload(ctx))

			e, err := reopened.Get("Place", p.ID)
			require.NoError(t, err)
			got := e.(*models.Place)
			assert.Equal(t, "Cabin", got.Name)
			assert.Equal(t, 6, got.MaxGuest)
			assert.InDelta(t, -23.55, got.Latitude, 1e-9)
			assert.Equal(t, "allowed", got.Extras["pets"])
			assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
			assert.True(t, p.UpdatedAt.Equal(got.UpdatedAt))
		})
	}
}

func TestBackend_StrictNumbers(t *testing.T) {
	ctx := context.Background()
	backend := setupBackend(t, "file.json", true)

	content := `{"BaseModel.x": {"__class__": "BaseModel", "id": "x", "big": 9007199254740993}}`
	require.NoError(t, os.WriteFile(backend.Path(), []byte(content), 0644))

	records, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, gojson.Number("9007199254740993"), records["BaseModel.x"]["big"])
}

func TestBackend_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		records, err := setupBackend(t, "file.json", false).Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty file is empty", func(t *testing.T) {
		backend := setupBackend(t, "file.json", false)
		require.NoError(t, os.WriteFile(backend.Path(), nil, 0644))
		records, err := backend.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("corrupt file fails", func(t *testing.T) {
		backend := setupBackend(t, "file.json", false)
		require.NoError(t, os.WriteFile(backend.Path(), []byte("{not json"), 0644))
		_, err := backend.Load(ctx)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "invalid json"), err.Error())
	})
}

func TestBackend_Config(t *testing.T) {
	t.Run("unknown extension", func(t *testing.T) {
		_, err := fs.NewBackend(fs.Config{Path: filepath.Join(t.TempDir(), "store.toml")})
		assert.Error(t, err)
	})

	t.Run("must exist", func(t *testing.T) {
		backend, err := fs.NewBackend(fs.Config{
			Path:      filepath.Join(t.TempDir(), "file.json"),
			MustExist: true,
		})
		require.NoError(t, err)
		assert.Error(t, backend.Initialize(context.Background()))
	})

	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "file.json")
		backend, err := fs.NewBackend(fs.Config{Path: path})
		require.NoError(t, err)
		require.NoError(t, backend.Initialize(context.Background()))
		require.NoError(t, backend.Store(context.Background(), map[string]core.Record{}))
		assert.FileExists(t, path)
	})
}

func TestBackend_State(t *testing.T) {
	ctx := context.Background()
	backend := setupBackend(t, "file.json", true)
	require.NoError(t, backend.Store(ctx, map[string]core.Record{}))
	_, err := backend.Load(ctx)
	require.NoError(t, err)

	state := backend.State().(fs.BackendState)
	assert.Equal(t, backend.Path(), state.Path)
	assert.True(t, state.Strict)
	assert.Equal(t, []string{".json", ".yaml", ".yml"}, state.Serializers)
	assert.Equal(t, 1, state.Loads)
	assert.Equal(t, 1, state.Stores)
	assert.Equal(t, "fs", backend.ComponentType())
}

func TestBackend_Watch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := setupBackend(t, "file.json", false)
	events, err := backend.Watch(ctx)
	require.NoError(t, err)

	// Another writer replaces the store.
	writer, err := fs.NewBackend(fs.Config{Path: backend.Path()})
	require.NoError(t, err)
	u := models.NewUser()
	require.NoError(t, writer.Store(ctx, map[string]core.Record{core.Key(u): core.Encode(u)}))

	select {
	case e := <-events:
		assert.Equal(t, backend.Path(), e.Source)
		assert.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for store change")
	}

	cancel()
	require.Eventually(t, func() bool {
		return !backend.State().(fs.BackendState).WatcherActive
	}, 2*time.Second, 10*time.Millisecond)
}

func TestBackend_Watch_IgnoresOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := setupBackend(t, "file.json", false)
	events, err := backend.Watch(ctx)
	require.NoError(t, err)

	u := models.NewUser()
	require.NoError(t, backend.Store(ctx, map[string]core.Record{core.Key(u): core.Encode(u)}))

	select {
	case e := <-events:
		t.Fatalf("unexpected event for own write: %s", e)
	case <-time.After(300 * time.Millisecond):
	}
	assert.Positive(t, backend.State().(fs.BackendState).IgnoredWrites)

	// A different writer's content is still reported.
	require.NoError(t, os.WriteFile(backend.Path(), []byte("{}"), 0644))
	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for external change")
	}
}

func TestEngine_Watch_KeepsRegisteredEntitiesOnOwnPersist(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend := setupBackend(t, "file.json", false)
	engine := storage.NewEngine(backend, models.DefaultCatalog(), nil)
	_, err := engine.Watch(ctx)
	require.NoError(t, err)

	s := models.NewState()
	require.NoError(t, core.Save(ctx, engine, s))
	time.Sleep(300 * time.Millisecond)

	got, err := engine.Get("State", s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got.(*models.State))

	s.Name = "renamed"
	require.NoError(t, engine.Persist(ctx))

	reopened := storage.NewEngine(backend, models.DefaultCatalog(), nil)
	require.NoError(t, reopened.Reload(ctx))
	again, err := reopened.Get("State", s.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.(*models.State).Name)
}
