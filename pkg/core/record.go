package core

import (
	"fmt"
	"maps"
)

// Reserved attribute names.
const (
	ClassKey     = "__class__"
	IDKey        = "id"
	CreatedAtKey = "created_at"
	UpdatedAtKey = "updated_at"
)

// Record is the flat serialized form of an entity, type tag included.
type Record map[string]any

// Fields is a flat attribute mapping without the type tag.
type Fields map[string]any

// Split separates the type tag from the attributes.
// The returned Fields never contain ClassKey.
func (r Record) Split() (class string, fields Fields) {
	fields = make(Fields, len(r))
	for k, v := range r {
		if k == ClassKey {
			class, _ = v.(string)
			continue
		}
		fields[k] = v
	}
	return class, fields
}

// Class returns the type tag, or "" when absent.
func (r Record) Class() string {
	class, _ := r[ClassKey].(string)
	return class
}

// ID returns the id attribute, or "" when absent.
func (r Record) ID() string {
	id, _ := r[IDKey].(string)
	return id
}

// Encode exports e as a Record: every attribute, timestamps as text
// and the concrete type name under ClassKey.
func Encode(e Entity) Record {
	rec := Record(attributes(e))
	rec[CreatedAtKey] = FormatTime(e.Meta().CreatedAt)
	rec[UpdatedAtKey] = FormatTime(e.Meta().UpdatedAt)
	rec[ClassKey] = e.Class()
	return rec
}

// Decode populates e from fields.
//
// An empty mapping yields a fresh entity, as Init does. Otherwise id is taken
// verbatim, timestamps are parsed from ISO-8601 text, declared attributes are
// coerced to their kind and any other key is kept in Extras. Extras must be
// scalars; previous Extras of e are discarded. On error e is left partially
// populated and should not be used.
func Decode(e Entity, fields Fields) error {
	b := e.Meta()
	b.Extras = nil
	if len(fields) == 0 {
		Init(e)
		return nil
	}

	id, ok := fields[IDKey]
	if !ok {
		return ErrMissingID
	}
	if b.ID, ok = id.(string); !ok || b.ID == "" {
		return fmt.Errorf("%w: id must be non-empty text, got %v", ErrMissingID, id)
	}

	schema := e.Schema()
	for k, v := range fields {
		var err error
		switch k {
		case IDKey:
		case ClassKey:
			err = fmt.Errorf("%w: %s", ErrReservedKey, k)
		case CreatedAtKey:
			b.CreatedAt, err = timeValue(k, v)
		case UpdatedAtKey:
			b.UpdatedAt, err = timeValue(k, v)
		default:
			if f, declared := schema.Lookup(k); declared {
				err = f.Set(v)
			} else if !scalar(v) {
				err = fmt.Errorf("%s: %w: nested %T", k, ErrInvalidValue, v)
			} else {
				if b.Extras == nil {
					b.Extras = make(map[string]any)
				}
				b.Extras[k] = v
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Set assigns a single attribute. Identity, timestamps and the type tag
// cannot be set this way.
func Set(e Entity, name string, value any) error {
	switch name {
	case IDKey, CreatedAtKey, UpdatedAtKey, ClassKey:
		return fmt.Errorf("%w: %s", ErrReservedKey, name)
	}
	if f, ok := e.Schema().Lookup(name); ok {
		return f.Set(value)
	}
	if !scalar(value) {
		return fmt.Errorf("%s: %w: nested %T", name, ErrInvalidValue, value)
	}
	b := e.Meta()
	if b.Extras == nil {
		b.Extras = make(map[string]any)
	}
	b.Extras[name] = value
	return nil
}

// Render returns "[<Class>] (<id>) <attributes>" for debugging.
func Render(e Entity) string {
	return fmt.Sprintf("[%s] (%s) %v", e.Class(), e.Meta().ID, attributes(e))
}

// AttributeTypes lists the declared kind of every attribute of e.
func AttributeTypes(e Entity) map[string]Kind {
	types := map[string]Kind{
		IDKey:        KindString,
		CreatedAtKey: KindTime,
		UpdatedAtKey: KindTime,
	}
	for _, f := range e.Schema() {
		types[f.Name] = f.Kind
	}
	return types
}

// scalar reports whether v fits a flat record.
func scalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

// attributes is the live attribute mapping of e, timestamps as time.Time.
func attributes(e Entity) map[string]any {
	b := e.Meta()
	attrs := make(map[string]any, len(b.Extras)+8)
	maps.Copy(attrs, b.Extras)
	for _, f := range e.Schema() {
		attrs[f.Name] = f.Value()
	}
	attrs[IDKey] = b.ID
	attrs[CreatedAtKey] = b.CreatedAt
	attrs[UpdatedAtKey] = b.UpdatedAt
	return attrs
}
