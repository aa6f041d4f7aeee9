package filter

import (
	"encoding/json"
	"fmt"
)

// Parse parses a filter node tree produced by an external filter-text parser.
// Returns the root expression, or nil for empty input.
//
// Error conditions:
//   - Invalid JSON syntax
//   - Unknown boolean or range operator
//   - A field node with zero or more than one payload member
func Parse(data []byte) (Expression, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	expr, err := parseNode(data)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return expr, nil
}

// rawNode is the intermediate structure for JSON parsing.
// Boolean nodes carry operator/children; field nodes carry key and exactly
// one payload member.
type rawNode struct {
	Operator string            `json:"operator"`
	Children []json.RawMessage `json:"children"`

	Key      string          `json:"key"`
	Nested   bool            `json:"nested"`
	Match    json.RawMessage `json:"match"`
	Range    json.RawMessage `json:"range"`
	Wildcard json.RawMessage `json:"wildcard"`
	Exists   json.RawMessage `json:"exists"`
}

// parseNode parses a single expression node from raw JSON.
func parseNode(data json.RawMessage) (Expression, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid node: %w", err)
	}

	if raw.Operator != "" {
		return parseBooleanNode(&raw)
	}
	return parseFieldNode(&raw)
}

func parseBooleanNode(raw *rawNode) (*BooleanExpression, error) {
	op := BooleanOperator(raw.Operator)
	if !op.Valid() {
		return nil, fmt.Errorf("unknown boolean operator %q", raw.Operator)
	}

	children := make([]Expression, 0, len(raw.Children))
	for i, child := range raw.Children {
		expr, err := parseNode(child)
		if err != nil {
			return nil, fmt.Errorf("invalid child %d: %w", i, err)
		}
		children = append(children, expr)
	}

	return &BooleanExpression{
		Operator: op,
		Children: children,
	}, nil
}

func parseFieldNode(raw *rawNode) (*FieldExpression, error) {
	payload, err := parsePayload(raw)
	if err != nil {
		return nil, err
	}

	return &FieldExpression{
		Key:     raw.Key,
		Payload: payload,
		Nested:  raw.Nested,
	}, nil
}

// parsePayload decodes the single payload member of a field node.
func parsePayload(raw *rawNode) (Payload, error) {
	var payload Payload
	count := 0

	if present(raw.Match) {
		count++
		var m struct {
			Value any `json:"value"`
		}
		if err := json.Unmarshal(raw.Match, &m); err != nil {
			return nil, fmt.Errorf("invalid match payload: %w", err)
		}
		payload = &MatchPayload{Value: m.Value}
	}

	if present(raw.Range) {
		count++
		var r struct {
			Operator string `json:"operator"`
			Value    any    `json:"value"`
		}
		if err := json.Unmarshal(raw.Range, &r); err != nil {
			return nil, fmt.Errorf("invalid range payload: %w", err)
		}
		op := RangeOperator(r.Operator)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown range operator %q", r.Operator)
		}
		payload = &RangePayload{Operator: op, Value: r.Value}
	}

	if present(raw.Wildcard) {
		count++
		var w struct {
			Pattern string `json:"pattern"`
		}
		if err := json.Unmarshal(raw.Wildcard, &w); err != nil {
			return nil, fmt.Errorf("invalid wildcard payload: %w", err)
		}
		payload = &WildcardPayload{Pattern: w.Pattern}
	}

	if present(raw.Exists) {
		count++
		payload = &ExistsPayload{}
	}

	if count == 0 {
		return nil, fmt.Errorf("field node %q has no payload", raw.Key)
	}
	if count > 1 {
		return nil, fmt.Errorf("field node %q has %d payloads, want 1", raw.Key, count)
	}
	return payload, nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
