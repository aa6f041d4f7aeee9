// Package mapping describes the shared index schema that multiplexes several
// object types, and resolves field paths against it.
//
// One physical index holds documents of every type. Each type declares its
// own attribute sub-schema; a fixed set of shared metadata fields lives at
// the top level of the index and is not part of the per-type declarations.
package mapping

import (
	"encoding/json"
	"fmt"
)

// Kind is the declared kind of a mapped property.
type Kind string

const (
	KindText    Kind = "text"
	KindKeyword Kind = "keyword"
	KindNumber  Kind = "number"
	KindDate    Kind = "date"
	KindObject  Kind = "object"
	KindNested  Kind = "nested"
)

// Valid reports whether the kind is one of the declared property kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindKeyword, KindNumber, KindDate, KindObject, KindNested:
		return true
	}
	return false
}

// Mapping maps an object type name to its attribute sub-schema.
type Mapping map[string]TypeMapping

// TypeMapping is the declared attribute sub-schema of one object type.
type TypeMapping struct {
	Properties map[string]Property `json:"properties"`
}

// Property is one node in a type's property tree.
// Opaque properties halt validation: nothing below them is declared, so
// sub-paths beneath them are accepted without field-by-field checks. Nested
// properties behave the same way.
type Property struct {
	Kind       Kind                `json:"kind"`
	Properties map[string]Property `json:"properties,omitempty"`
	Opaque     bool                `json:"opaque,omitempty"`
}

// Parse parses a mapping document in the shared-index JSON format:
//
//	{ "<type>": { "properties": { "<field>": { "kind": "...", ... } } } }
//
// Error conditions:
//   - Invalid JSON syntax
//   - A property with an unknown kind
func Parse(data []byte) (Mapping, error) {
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("mapping: invalid JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MarshalDocument serializes the mapping to its JSON document form,
// the inverse of Parse.
func (m Mapping) MarshalDocument() ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("mapping: marshal: %w", err)
	}
	return data, nil
}

// Validate checks every declared property kind.
func (m Mapping) Validate() error {
	for typeName, tm := range m {
		if err := validateProperties(typeName, tm.Properties); err != nil {
			return err
		}
	}
	return nil
}

func validateProperties(path string, props map[string]Property) error {
	for name, p := range props {
		fieldPath := path + "." + name
		if !p.Kind.Valid() {
			return fmt.Errorf("mapping: property %s has unknown kind %q", fieldPath, p.Kind)
		}
		if err := validateProperties(fieldPath, p.Properties); err != nil {
			return err
		}
	}
	return nil
}
