package schema

import (
	"fmt"
)

// Record is a single table row: an ordered sequence of typed values matching
// the schema's field layout. Values are stored as int64, string, or bool.
type Record struct {
	schema *Schema
	values []any
}

// NewRecord creates a record with zero values for every field of the schema.
func NewRecord(s *Schema) *Record {
	values := make([]any, len(s.Fields))
	for i, f := range s.Fields {
		switch f.Type {
		case FieldInt:
			values[i] = int64(0)
		case FieldString:
			values[i] = ""
		case FieldBool:
			values[i] = false
		}
	}
	return &Record{schema: s, values: values}
}

// Schema returns the schema this record belongs to.
func (r *Record) Schema() *Schema {
	return r.schema
}

// Get returns the value of a field by name.
func (r *Record) Get(name string) (any, bool) {
	_, i, ok := r.schema.Field(name)
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// At returns the value at field position i.
func (r *Record) At(i int) any {
	return r.values[i]
}

// Int returns the value of an integer field, or 0 if absent or mistyped.
func (r *Record) Int(name string) int64 {
	v, ok := r.Get(name)
	if !ok {
		return 0
	}
	n, _ := v.(int64)
	return n
}

// Text returns the value of a string field, or "" if absent or mistyped.
func (r *Record) Text(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Bool returns the value of a boolean field, or false if absent or mistyped.
func (r *Record) Bool(name string) bool {
	v, ok := r.Get(name)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// Set assigns a field value, coercing compatible numeric types.
// Returns an error for unknown fields or type mismatches.
func (r *Record) Set(name string, value any) error {
	spec, i, ok := r.schema.Field(name)
	if !ok {
		return fmt.Errorf("schema %s: unknown field %q", r.schema.Name, name)
	}

	coerced, err := Coerce(value, spec.Type)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	r.values[i] = coerced
	return nil
}

// Coerce converts a raw value to the canonical representation for a field
// type. JSON decoding produces float64 for numbers and int literals arrive as
// int or int64, so integer fields accept all three.
func Coerce(value any, t FieldType) (any, error) {
	switch t {
	case FieldInt:
		switch v := value.(type) {
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case float64:
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("value %v is not an integer", v)
			}
			return int64(v), nil
		}
	case FieldString:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case FieldBool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("value %v (%T) does not match field type", value, value)
}

// Clone returns a deep copy of the record.
// Values are immutable scalars, so copying the slice is sufficient.
func (r *Record) Clone() *Record {
	values := make([]any, len(r.values))
	copy(values, r.values)
	return &Record{schema: r.schema, values: values}
}

// Equal reports whether two records have the same schema and identical values.
func (r *Record) Equal(other *Record) bool {
	if other == nil || r.schema != other.schema {
		return false
	}
	for i, v := range r.values {
		if other.values[i] != v {
			return false
		}
	}
	return true
}

// Map returns the record as a field-name to value map.
// Useful for JSON responses; field order is lost.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, f := range r.schema.Fields {
		m[f.Name] = r.values[i]
	}
	return m
}
