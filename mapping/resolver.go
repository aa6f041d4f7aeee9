package mapping

import "strings"

// IsKnownType reports whether name is declared in the mapping, regardless of
// whether a caller is allowed to query it. Classification uses this to tell
// an unknown key prefix apart from a known but disallowed type.
func (m Mapping) IsKnownType(name string) bool {
	_, ok := m[name]
	return ok
}

// FieldExists reports whether subPath resolves under the type's declared
// attribute sub-schema, consuming one dot-segment at a time.
//
// Resolution fails on the first missing segment. It stops early and reports
// true when it reaches a nested or opaque property: everything below that
// boundary is undeclared and accepted as-is.
func (m Mapping) FieldExists(typeName, subPath string) bool {
	tm, ok := m[typeName]
	if !ok {
		return false
	}

	props := tm.Properties
	segments := strings.Split(subPath, ".")
	for i, segment := range segments {
		p, ok := props[segment]
		if !ok {
			return false
		}
		if p.Kind == KindNested || p.Opaque {
			return true
		}
		if i == len(segments)-1 {
			return true
		}
		if len(p.Properties) == 0 {
			return false
		}
		props = p.Properties
	}
	return true
}
