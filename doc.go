// Package burrow is the composition root for the burrow storage layer.
//
// It connects the entity model (pkg/core, pkg/models) with the storage
// adapters (pkg/adapters/...) through the registry engine in pkg/storage.
//
// Every entity carries an id and creation/update timestamps managed by
// core.Base. Entities export to a flat record tagged with "__class__" and are
// rebuilt from such records through a catalog of known classes. The engine
// keeps them keyed by "<Class>.<id>" and flushes the full set to the backend
// on Persist.
//
// Adapters:
//
//   - fs: a single JSON or YAML file, written atomically, watchable.
//   - memory: in-process, for tests and throwaway sessions.
//   - postgres: one jsonb row per entity (pgx).
//   - redis: one hash field per entity (go-redis).
//
// Usage:
//
//	engine, err := burrow.Open(ctx, "file.json", burrow.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	defer engine.Close(ctx)
//
//	u := models.NewUser()
//	u.Email = "ada@example.com"
//	err = burrow.Save(ctx, engine, u)
package burrow
