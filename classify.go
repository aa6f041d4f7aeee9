package filterscope

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sharedindex/filterscope/mapping"
)

// attributesSegment separates a type's business attributes from its
// reserved metadata fields in caller-written keys.
const attributesSegment = "attributes."

// classify decides the outcome for one field key. The walker fills in
// ASTPath afterwards.
//
// Outcomes, checked in order: empty key; prefix not in the allow-list
// (known type vs unrecognized prefix); attribute path (existence-checked
// unless the leaf is nested-shaped); reserved metadata field; malformed
// path with neither attributes segment nor metadata name.
func (r *Rewriter) classify(key string, nested bool, types []string, m mapping.Mapping) Finding {
	if key == "" {
		return Finding{
			Error: fmt.Sprintf(
				"The key is empty and needs to be wrapped by a saved object type like %s",
				strings.Join(types, ",")),
		}
	}

	prefix, rest, _ := strings.Cut(key, ".")
	if !slices.Contains(types, prefix) {
		// Known-but-disallowed keeps the type in the finding; an
		// unrecognized prefix does not. Both report isSavedObjectAttr=true,
		// which existing callers rely on.
		if m.IsKnownType(prefix) {
			return Finding{
				Key:               key,
				Type:              prefix,
				IsSavedObjectAttr: true,
				Error:             fmt.Sprintf("This type %s is not allowed", prefix),
			}
		}
		return Finding{
			Key:               key,
			IsSavedObjectAttr: true,
			Error: fmt.Sprintf(
				"This key '%s' need to be wrapped by a saved object type like %s",
				key, strings.Join(types, ",")),
		}
	}

	if sub, ok := strings.CutPrefix(rest, attributesSegment); ok {
		f := Finding{Key: key, Type: prefix}
		// Nested-shaped leaves stop at the boundary the mapping declares;
		// their sub-fields are not checked one by one.
		if !nested && !m.FieldExists(prefix, sub) {
			f.Error = fmt.Sprintf(
				"This key '%s' does NOT exist in %s saved object index patterns",
				key, prefix)
		}
		return f
	}

	if _, ok := r.meta[rest]; ok {
		// Metadata fields are fixed configuration, not mapping-declared;
		// no existence check against the mapping.
		return Finding{Key: key, Type: prefix, IsSavedObjectAttr: true}
	}

	return Finding{
		Key:  key,
		Type: prefix,
		Error: fmt.Sprintf(
			"This key '%s' does NOT match the filter proposition SavedObjectType.attributes.key",
			key),
	}
}
