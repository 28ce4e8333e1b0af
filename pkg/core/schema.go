package core

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the declared type of an attribute.
type Kind string

const (
	KindString Kind = "string"
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindTime   Kind = "time"
)

// Field binds a declared attribute name to a location inside an entity.
type Field struct {
	Name string
	Kind Kind
	ptr  any
}

// Schema is the ordered list of declared attributes of an entity.
type Schema []Field

// String declares a string attribute.
func String(name string, p *string) Field {
	return Field{Name: name, Kind: KindString, ptr: p}
}

// Int declares an integer attribute.
func Int(name string, p *int) Field {
	return Field{Name: name, Kind: KindInt, ptr: p}
}

// Float declares a floating point attribute.
func Float(name string, p *float64) Field {
	return Field{Name: name, Kind: KindFloat, ptr: p}
}

// Lookup returns the field called name.
func (s Schema) Lookup(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value returns the current value of the field.
func (f Field) Value() any {
	switch p := f.ptr.(type) {
	case *string:
		return *p
	case *int:
		return *p
	case *float64:
		return *p
	}
	return nil
}

// Set assigns v to the field, coercing numbers and numeric text.
func (f Field) Set(v any) error {
	switch p := f.ptr.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return f.invalid(v)
		}
		*p = s
	case *int:
		n, err := toInt(v)
		if err != nil {
			return f.invalid(v)
		}
		*p = n
	case *float64:
		n, err := toFloat(v)
		if err != nil {
			return f.invalid(v)
		}
		*p = n
	default:
		return fmt.Errorf("%s: unbound field", f.Name)
	}
	return nil
}

func (f Field) invalid(v any) error {
	return fmt.Errorf("%s: %w: cannot use %v (%T) as %s", f.Name, ErrInvalidValue, v, v, f.Kind)
}

// number matches json.Number as produced by strict decoders.
type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, strconv.ErrSyntax
		}
		return int(n), nil
	case number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(n)
	}
	return 0, strconv.ErrSyntax
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	}
	return 0, strconv.ErrSyntax
}
