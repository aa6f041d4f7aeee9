package filterscope

import (
	"strconv"

	"github.com/sharedindex/filterscope/filter"
	"github.com/sharedindex/filterscope/mapping"
)

// Validate walks astFilter depth-first, left to right, classifying every
// field node against the allowed types and the mapping. It returns one
// Finding per field node in traversal order and never fails: errors are
// reported inside the findings so callers can aggregate all problems in a
// single pass.
//
// hasNestedKey tells the walker the filter may contain nested-shaped field
// nodes; when false, nested flags on individual nodes are ignored and every
// key is existence-checked.
func (r *Rewriter) Validate(astFilter filter.Expression, types []string, m mapping.Mapping, hasNestedKey bool) []Finding {
	var findings []Finding
	r.walk(astFilter, "", types, m, hasNestedKey, &findings)
	return findings
}

func (r *Rewriter) walk(node filter.Expression, path string, types []string, m mapping.Mapping, hasNestedKey bool, out *[]Finding) {
	switch n := node.(type) {
	case *filter.BooleanExpression:
		// Combinators carry no field; only their children are classified.
		for i, child := range n.Children {
			r.walk(child, childPath(path, i), types, m, hasNestedKey, out)
		}
	case *filter.FieldExpression:
		f := r.classify(n.Key, hasNestedKey && n.Nested, types, m)
		f.ASTPath = path
		*out = append(*out, f)
	}
}

// childPath appends a child index to a path locator. The root's own index
// is omitted, so the root node has the empty path.
func childPath(path string, index int) string {
	if path == "" {
		return strconv.Itoa(index)
	}
	return path + "." + strconv.Itoa(index)
}

// HasNestedLeaf reports whether any field node in the tree is marked
// nested. ConvertText uses it to decide the hasNestedKey flag for
// validation.
func HasNestedLeaf(expr filter.Expression) bool {
	switch n := expr.(type) {
	case *filter.BooleanExpression:
		for _, child := range n.Children {
			if HasNestedLeaf(child) {
				return true
			}
		}
	case *filter.FieldExpression:
		return n.Nested
	}
	return false
}
