package models

import (
	"fmt"
	"slices"

	"github.com/aretw0/burrow/pkg/core"
)

// Catalog maps class names to constructors of empty entities.
type Catalog map[string]func() core.Entity

// DefaultCatalog returns a catalog of every type in this package.
func DefaultCatalog() Catalog {
	return Catalog{
		"BaseModel": func() core.Entity { return &BaseModel{} },
		"User":      func() core.Entity { return &User{} },
		"State":     func() core.Entity { return &State{} },
		"City":      func() core.Entity { return &City{} },
		"Amenity":   func() core.Entity { return &Amenity{} },
		"Place":     func() core.Entity { return &Place{} },
		"Review":    func() core.Entity { return &Review{} },
	}
}

// New returns an empty, uninitialized entity of class.
func (c Catalog) New(class string) (core.Entity, error) {
	ctor, ok := c[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownClass, class)
	}
	return ctor(), nil
}

// Create returns an entity of class with a fresh identity.
func (c Catalog) Create(class string) (core.Entity, error) {
	e, err := c.New(class)
	if err != nil {
		return nil, err
	}
	core.Init(e)
	return e, nil
}

// Classes returns the registered class names, sorted.
func (c Catalog) Classes() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AttributeTypes returns the declared attribute kinds of class.
func (c Catalog) AttributeTypes(class string) (map[string]core.Kind, error) {
	e, err := c.New(class)
	if err != nil {
		return nil, err
	}
	return core.AttributeTypes(e), nil
}

// FromRecord rebuilds the entity described by rec.
func (c Catalog) FromRecord(rec core.Record) (core.Entity, error) {
	return core.FromRecord(c, rec)
}

var _ core.Catalog = Catalog(nil)
