package filter

import (
	"encoding/json"
	"fmt"
)

// Encode serializes an expression tree back to the node JSON accepted by
// Parse. Rewritten trees are typically handed to a query layer in this form.
// Encoding a nil expression returns nil bytes.
func Encode(expr Expression) ([]byte, error) {
	if expr == nil {
		return nil, nil
	}
	data, err := json.Marshal(expr)
	if err != nil {
		return nil, fmt.Errorf("filter: encode: %w", err)
	}
	return data, nil
}

// MarshalJSON implements json.Marshaler.
func (b *BooleanExpression) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operator BooleanOperator `json:"operator"`
		Children []Expression    `json:"children"`
	}{
		Operator: b.Operator,
		Children: b.Children,
	})
}

// MarshalJSON implements json.Marshaler.
func (f *FieldExpression) MarshalJSON() ([]byte, error) {
	out := struct {
		Key      string           `json:"key"`
		Nested   bool             `json:"nested,omitempty"`
		Match    *MatchPayload    `json:"match,omitempty"`
		Range    *RangePayload    `json:"range,omitempty"`
		Wildcard *WildcardPayload `json:"wildcard,omitempty"`
		Exists   *ExistsPayload   `json:"exists,omitempty"`
	}{
		Key:    f.Key,
		Nested: f.Nested,
	}

	switch p := f.Payload.(type) {
	case *MatchPayload:
		out.Match = p
	case *RangePayload:
		out.Range = p
	case *WildcardPayload:
		out.Wildcard = p
	case *ExistsPayload:
		out.Exists = p
	case nil:
		return nil, fmt.Errorf("field node %q has no payload", f.Key)
	default:
		return nil, fmt.Errorf("field node %q has unsupported payload %T", f.Key, p)
	}

	return json.Marshal(out)
}

// MarshalJSON implements json.Marshaler.
func (m *MatchPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value any `json:"value"`
	}{Value: m.Value})
}

// MarshalJSON implements json.Marshaler.
func (r *RangePayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Operator RangeOperator `json:"operator"`
		Value    any           `json:"value"`
	}{Operator: r.Operator, Value: r.Value})
}

// MarshalJSON implements json.Marshaler.
func (w *WildcardPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Pattern string `json:"pattern"`
	}{Pattern: w.Pattern})
}

// MarshalJSON implements json.Marshaler.
func (e *ExistsPayload) MarshalJSON() ([]byte, error) {
	return []byte("{}"), nil
}
