// Package typed offers a type-safe view of a registry for one entity class.
package typed

import (
	"context"
	"fmt"

	"github.com/aretw0/burrow/pkg/core"
)

// Store is the registry surface the typed wrapper needs.
// *storage.Engine implements it.
type Store interface {
	core.Registry
	Get(class, id string) (core.Entity, error)
	All(pattern string) ([]core.Entity, error)
	Count(class string) int
	Delete(ctx context.Context, class, id string) error
}

// Repository wraps a Store to provide access to entities of type E.
// P is inferred as *E:
//
//	reviews := typed.NewRepository[models.Review](engine)
type Repository[E any, P interface {
	*E
	core.Entity
}] struct {
	store Store
	class string
}

// NewRepository creates a type-safe wrapper around store.
func NewRepository[E any, P interface {
	*E
	core.Entity
}](store Store) *Repository[E, P] {
	return &Repository[E, P]{
		store: store,
		class: P(new(E)).Class(),
	}
}

// Class returns the entity class served by the repository.
func (r *Repository[E, P]) Class() string {
	return r.class
}

// New returns a fresh, unsaved entity.
func (r *Repository[E, P]) New() P {
	e := P(new(E))
	core.Init(e)
	return e
}

// Save advances the entity's UpdatedAt, registers it and persists.
func (r *Repository[E, P]) Save(ctx context.Context, e P) error {
	return core.Save(ctx, r.store, e)
}

// Get retrieves an entity by id.
func (r *Repository[E, P]) Get(id string) (P, error) {
	e, err := r.store.Get(r.class, id)
	if err != nil {
		return nil, err
	}
	return r.cast(e)
}

// List returns every registered entity of the class, sorted by id.
func (r *Repository[E, P]) List() ([]P, error) {
	all, err := r.store.All(r.class + ".*")
	if err != nil {
		return nil, err
	}

	result := make([]P, 0, len(all))
	for _, e := range all {
		typed, err := r.cast(e)
		if err != nil {
			return nil, err
		}
		result = append(result, typed)
	}
	return result, nil
}

// Count returns the number of registered entities of the class.
func (r *Repository[E, P]) Count() int {
	return r.store.Count(r.class)
}

// Delete removes an entity by id and persists.
func (r *Repository[E, P]) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, r.class, id)
}

func (r *Repository[E, P]) cast(e core.Entity) (P, error) {
	typed, ok := e.(P)
	if !ok {
		return nil, fmt.Errorf("entity %s is %T, not %T", core.Key(e), e, P(nil))
	}
	return typed, nil
}
