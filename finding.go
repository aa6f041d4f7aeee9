package filterscope

// Finding is one classification result for a single field-bearing node of a
// filter tree. Findings are immutable once produced; repeated validation of
// an unchanged tree yields identical findings in identical order.
type Finding struct {
	// ASTPath locates the node: the chain of child indices from the root,
	// dot-joined (e.g. "1.0"). Empty when the root itself is a field node.
	ASTPath string `json:"astPath"`

	// Key is the raw field path as written by the caller. Empty when the
	// node had no key at all.
	Key string `json:"key"`

	// Type is the object type the key was scoped to, when one was
	// recognized.
	Type string `json:"type"`

	// IsSavedObjectAttr is true for reserved metadata keys. It is also
	// set on type-scoping failures; existing consumers depend on that.
	IsSavedObjectAttr bool `json:"isSavedObjectAttr"`

	// Error is the classification error message. Empty on success. The
	// message texts are fixed; existing callers match on them.
	Error string `json:"error,omitempty"`
}
