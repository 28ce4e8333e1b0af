package core

import (
	"context"
	"fmt"
)

// Save advances UpdatedAt, registers e and asks the registry to persist.
func Save(ctx context.Context, r Registry, e Entity) error {
	e.Meta().Touch()
	if err := r.Register(ctx, e); err != nil {
		return fmt.Errorf("register %s: %w", Key(e), err)
	}
	return r.Persist(ctx)
}

// FromRecord builds an entity of the record's class using catalog.
func FromRecord(catalog Catalog, rec Record) (Entity, error) {
	class, fields := rec.Split()
	e, err := catalog.New(class)
	if err != nil {
		return nil, err
	}
	if err := Decode(e, fields); err != nil {
		return nil, fmt.Errorf("decode %s: %w", class, err)
	}
	return e, nil
}
