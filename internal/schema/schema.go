// Package schema defines the fixed table schemas for the aircraft data tables
// and the typed Record representation shared by the codec and the table model.
// Schemas are compiled in and not user-editable.
package schema

import (
	"fmt"
	"sort"
	"sync"
)

// FieldType represents the data type of a table field.
type FieldType int

const (
	FieldInt FieldType = iota
	FieldString
	FieldBool
)

// FieldSpec defines a single column of a table schema.
type FieldSpec struct {
	Name string    // Field name, must match the table data exactly
	Type FieldType // Expected data type
}

// Schema is the fixed, ordered field layout of one table kind.
// Field order is significant: the binary codec encodes fields in
// exactly this order.
type Schema struct {
	Name   string // Table name: "PlayerPlaneDataTable"
	Fields []FieldSpec

	index map[string]int
}

// New creates a Schema and builds its field index.
// Panics on duplicate field names; schemas are static program data.
func New(name string, fields ...FieldSpec) *Schema {
	s := &Schema{
		Name:   name,
		Fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, exists := s.index[f.Name]; exists {
			panic(fmt.Sprintf("schema %s: duplicate field %s", name, f.Name))
		}
		s.index[f.Name] = i
	}
	return s
}

// Field returns the spec and position of a field by name.
func (s *Schema) Field(name string) (FieldSpec, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldSpec{}, 0, false
	}
	return s.Fields[i], i, true
}

// Has reports whether the schema contains a field with the given name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// NumFields returns the number of fields in the schema.
func (s *Schema) NumFields() int {
	return len(s.Fields)
}

var (
	registry   = make(map[string]*Schema)
	registryMu sync.RWMutex
)

// Register adds a schema to the registry.
// Panics if a schema with the same name is already registered.
func Register(s *Schema) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[s.Name]; exists {
		panic(fmt.Sprintf("schema already registered: %s", s.Name))
	}
	registry[s.Name] = s
}

// Get returns a registered schema by table name.
// Returns false if not found.
func Get(name string) (*Schema, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := registry[name]
	return s, ok
}

// All returns all registered schemas sorted by name for consistent ordering.
func All() []*Schema {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]*Schema, 0, len(registry))
	for _, s := range registry {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
