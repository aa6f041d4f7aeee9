package mapping

import "fmt"

// Builder builds mappings using a fluent API.
// Not thread-safe - use only during initialization.
type Builder struct {
	types []*typeBuilder
	built bool
}

type typeBuilder struct {
	name  string
	props map[string]Property
}

// NewBuilder creates a new fluent mapping builder.
//
// Example:
//
//	m, err := mapping.NewBuilder().
//	    Type("foo").
//	        Field("title", mapping.KindText).
//	        Field("bytes", mapping.KindNumber).
//	    Type("alert").
//	        Nested("actions").
//	    Build()
func NewBuilder() *Builder {
	return &Builder{
		types: make([]*typeBuilder, 0),
	}
}

// Type starts declaring a new object type.
// Returns a TypeBuilder for adding that type's attribute fields.
// Type names MUST be non-empty and unique within the mapping.
func (b *Builder) Type(name string) *TypeBuilder {
	tb := &typeBuilder{
		name:  name,
		props: make(map[string]Property),
	}
	b.types = append(b.types, tb)
	return &TypeBuilder{builder: tb, mapping: b}
}

// Build finalizes the mapping.
// Can only be called once. Returns an error if the mapping is invalid
// (empty or duplicate type names, empty field names, unknown kinds).
func (b *Builder) Build() (Mapping, error) {
	if b.built {
		return nil, fmt.Errorf("mapping already built")
	}

	seen := make(map[string]bool)
	m := make(Mapping, len(b.types))
	for _, tb := range b.types {
		if tb.name == "" {
			return nil, fmt.Errorf("type name cannot be empty")
		}
		if seen[tb.name] {
			return nil, fmt.Errorf("duplicate type name: %s", tb.name)
		}
		seen[tb.name] = true
		m[tb.name] = TypeMapping{Properties: tb.props}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	b.built = true
	return m, nil
}

// TypeBuilder declares the attribute fields of one object type.
type TypeBuilder struct {
	builder *typeBuilder
	mapping *Builder
	err     error
}

// Field declares a scalar attribute field.
func (tb *TypeBuilder) Field(name string, kind Kind) *TypeBuilder {
	return tb.add(name, Property{Kind: kind})
}

// Object declares an object attribute field with declared sub-fields.
func (tb *TypeBuilder) Object(name string, build func(*PropertyBuilder)) *TypeBuilder {
	pb := &PropertyBuilder{props: make(map[string]Property)}
	if build != nil {
		build(pb)
	}
	return tb.add(name, Property{Kind: KindObject, Properties: pb.props})
}

// Nested declares a nested attribute field. Sub-fields below a nested
// boundary are not declared and not validated field by field.
func (tb *TypeBuilder) Nested(name string) *TypeBuilder {
	return tb.add(name, Property{Kind: KindNested})
}

// Opaque declares an object attribute field whose contents are undeclared.
// Validation accepts any sub-path beneath it.
func (tb *TypeBuilder) Opaque(name string) *TypeBuilder {
	return tb.add(name, Property{Kind: KindObject, Opaque: true})
}

func (tb *TypeBuilder) add(name string, p Property) *TypeBuilder {
	if name == "" && tb.err == nil {
		tb.err = fmt.Errorf("field name cannot be empty in type %s", tb.builder.name)
	}
	if _, dup := tb.builder.props[name]; dup && tb.err == nil {
		tb.err = fmt.Errorf("duplicate field name %s in type %s", name, tb.builder.name)
	}
	if tb.err != nil {
		return tb
	}
	tb.builder.props[name] = p
	return tb
}

// Type starts declaring the next object type on the parent builder.
func (tb *TypeBuilder) Type(name string) *TypeBuilder {
	next := tb.mapping.Type(name)
	next.err = tb.err
	return next
}

// Build finalizes the mapping on the parent builder.
func (tb *TypeBuilder) Build() (Mapping, error) {
	if tb.err != nil {
		return nil, tb.err
	}
	return tb.mapping.Build()
}

// PropertyBuilder declares the sub-fields of an object property.
type PropertyBuilder struct {
	props map[string]Property
}

// Field declares a scalar sub-field.
func (pb *PropertyBuilder) Field(name string, kind Kind) *PropertyBuilder {
	pb.props[name] = Property{Kind: kind}
	return pb
}

// Object declares an object sub-field with its own declared sub-fields.
func (pb *PropertyBuilder) Object(name string, build func(*PropertyBuilder)) *PropertyBuilder {
	inner := &PropertyBuilder{props: make(map[string]Property)}
	if build != nil {
		build(inner)
	}
	pb.props[name] = Property{Kind: KindObject, Properties: inner.props}
	return pb
}

// Nested declares a nested sub-field.
func (pb *PropertyBuilder) Nested(name string) *PropertyBuilder {
	pb.props[name] = Property{Kind: KindNested}
	return pb
}
