package filterscope

import (
	"fmt"
	"strings"

	"github.com/sharedindex/filterscope/filter"
	"github.com/sharedindex/filterscope/internal/recovery"
	"github.com/sharedindex/filterscope/mapping"
)

// Convert validates astFilter against the allowed types and the mapping,
// then returns a fresh tree rewritten to storage-level field names:
//
//   - Attribute keys drop the attributes segment but keep the type prefix,
//     which is the storage name inside the shared index
//     (alert.attributes.actions.id becomes alert.actions.id).
//   - Metadata keys become a conjunction of a synthetic type clause and the
//     bare metadata field (foo.updated_at becomes
//     and(type: foo, updated_at: ...)). Each occurrence is wrapped
//     independently, so a disjunction across types gets one type clause per
//     branch.
//
// Payloads pass through verbatim and the input tree is never mutated.
//
// Convert fails fast: the first classification error in traversal order is
// returned as a *BadRequestError and no rewrite is produced. A nil input
// tree converts to nil.
func (r *Rewriter) Convert(types []string, astFilter filter.Expression, m mapping.Mapping) (filter.Expression, error) {
	if astFilter == nil {
		return nil, nil
	}

	findings := r.Validate(astFilter, types, m, HasNestedLeaf(astFilter))
	for _, f := range findings {
		if f.Error != "" {
			return nil, &BadRequestError{Reason: f.Error}
		}
	}

	rewritten := rewrite(astFilter)
	r.logger.Debug("filter rewritten",
		"types", types,
		"fields", len(findings),
	)
	return rewritten, nil
}

// ConvertText parses filter text with the configured Parser and converts
// the result. Empty text is a no-op and returns a nil tree.
//
// The parser is caller-supplied code; it runs under panic recovery, so a
// panicking parser surfaces as an error rather than crashing the caller.
func (r *Rewriter) ConvertText(types []string, text string, m mapping.Mapping) (filter.Expression, error) {
	if text == "" {
		return nil, nil
	}
	if r.parser == nil {
		return nil, fmt.Errorf("filterscope: %w", ErrNoParser)
	}

	astFilter, err := recovery.Call(r.logger, "Parse", func() (filter.Expression, error) {
		return r.parser.Parse(text)
	})
	if err != nil {
		return nil, fmt.Errorf("filterscope: parse filter: %w", err)
	}

	return r.Convert(types, astFilter, m)
}

// rewrite copies the tree, rewriting every field node. It runs only after
// validation, so keys are known to be well-formed.
func rewrite(node filter.Expression) filter.Expression {
	switch n := node.(type) {
	case *filter.BooleanExpression:
		children := make([]filter.Expression, len(n.Children))
		for i, child := range n.Children {
			children[i] = rewrite(child)
		}
		return &filter.BooleanExpression{Operator: n.Operator, Children: children}
	case *filter.FieldExpression:
		return rewriteField(n)
	default:
		return node
	}
}

func rewriteField(n *filter.FieldExpression) filter.Expression {
	typeName, rest, _ := strings.Cut(n.Key, ".")

	if sub, ok := strings.CutPrefix(rest, attributesSegment); ok {
		return &filter.FieldExpression{
			Key:     typeName + "." + sub,
			Payload: n.Payload,
			Nested:  n.Nested,
		}
	}

	// Metadata fields live at the top level of the shared index; without
	// the type clause the comparison would match documents of every type.
	return &filter.BooleanExpression{
		Operator: filter.OperatorAnd,
		Children: []filter.Expression{
			&filter.FieldExpression{
				Key:     "type",
				Payload: &filter.MatchPayload{Value: typeName},
			},
			&filter.FieldExpression{
				Key:     rest,
				Payload: n.Payload,
				Nested:  n.Nested,
			},
		},
	}
}
