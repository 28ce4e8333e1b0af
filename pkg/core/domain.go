// Package core holds the entity model shared by every burrow component:
// the embedded Base, the flat Record form and the Registry port.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every concrete record type.
// Concrete types embed Base and declare their own attributes through Schema.
type Entity interface {
	// Class is the concrete type name written to the type tag.
	Class() string
	// Meta exposes the embedded identity and timestamps.
	Meta() *Base
	// Schema binds the declared attributes of this instance.
	Schema() Schema
}

// Base carries the identity and timestamps managed for every entity.
type Base struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Extras holds attributes that are not part of the declared schema.
	// They are exported and reloaded verbatim.
	Extras map[string]any
}

// Meta implements Entity for any struct embedding Base.
func (b *Base) Meta() *Base {
	return b
}

// Key is the registry key "<Class>.<id>".
func Key(e Entity) string {
	return e.Class() + "." + e.Meta().ID
}

// Init gives e a fresh identity: a new UUID and created_at == updated_at == now.
func Init(e Entity) {
	b := e.Meta()
	b.ID = uuid.NewString()
	b.CreatedAt = now()
	b.UpdatedAt = b.CreatedAt
}

// Touch advances UpdatedAt to the current time.
// The new value is always strictly later than the previous one.
func (b *Base) Touch() {
	t := now()
	if !t.After(b.UpdatedAt) {
		t = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedAt = t
}

// EventType represents the type of change observed in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the underlying store.
type Event struct {
	Type      EventType
	Source    string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Source
}
