package filter

// BooleanOperator identifies a boolean combinator.
type BooleanOperator string

const (
	OperatorAnd BooleanOperator = "and"
	OperatorOr  BooleanOperator = "or"
	OperatorNot BooleanOperator = "not"
)

// Valid reports whether the operator is one of and/or/not.
func (op BooleanOperator) Valid() bool {
	switch op {
	case OperatorAnd, OperatorOr, OperatorNot:
		return true
	}
	return false
}

// RangeOperator identifies a range comparison bound.
type RangeOperator string

const (
	RangeGreaterThan        RangeOperator = "gt"
	RangeGreaterThanOrEqual RangeOperator = "gte"
	RangeLessThan           RangeOperator = "lt"
	RangeLessThanOrEqual    RangeOperator = "lte"
)

// Valid reports whether the operator is one of gt/gte/lt/lte.
func (op RangeOperator) Valid() bool {
	switch op {
	case RangeGreaterThan, RangeGreaterThanOrEqual, RangeLessThan, RangeLessThanOrEqual:
		return true
	}
	return false
}

// Expression is the interface implemented by all filter expression nodes.
// Use type assertions or type switches to access specific node data.
type Expression interface {
	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// BooleanExpression combines child expressions with and/or/not.
// Children are ordered; traversal and rewriting preserve the order.
type BooleanExpression struct {
	Operator BooleanOperator
	Children []Expression
}

func (*BooleanExpression) expressionMarker() {}

// FieldExpression compares one field against a payload.
// Key is the dot-delimited field path as written by the caller.
// Nested marks comparisons against fields below a nested boundary in the
// index mapping; sub-fields of nested objects are not validated one by one.
type FieldExpression struct {
	Key     string
	Payload Payload
	Nested  bool
}

func (*FieldExpression) expressionMarker() {}

// Payload carries the comparison semantics of a FieldExpression.
// The validation and rewrite engine passes payloads through verbatim.
type Payload interface {
	// payloadMarker is a marker method to prevent external implementation.
	payloadMarker()
}

// MatchPayload is an equality comparison against a single value.
type MatchPayload struct {
	Value any
}

func (*MatchPayload) payloadMarker() {}

// RangePayload is a bound comparison (gt, gte, lt, lte).
type RangePayload struct {
	Operator RangeOperator
	Value    any
}

func (*RangePayload) payloadMarker() {}

// WildcardPayload matches a field against a wildcard pattern.
type WildcardPayload struct {
	Pattern string
}

func (*WildcardPayload) payloadMarker() {}

// ExistsPayload matches documents where the field is present.
type ExistsPayload struct{}

func (*ExistsPayload) payloadMarker() {}
