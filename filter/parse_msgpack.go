package filter

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ParseMsgpack parses a MessagePack-encoded filter node tree. External
// parsers running out of process hand trees over in MessagePack to avoid
// re-serializing payload values through text.
//
// The node shapes match Parse: boolean nodes carry operator/children, field
// nodes carry key and exactly one payload member.
func ParseMsgpack(data []byte) (Expression, error) {
	if len(data) == 0 || isMsgpackNil(data) {
		return nil, nil
	}

	expr, err := parseMsgpackNode(data)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return expr, nil
}

// rawMsgpackNode mirrors rawNode for two-phase MessagePack decoding.
type rawMsgpackNode struct {
	Operator string               `msgpack:"operator"`
	Children []msgpack.RawMessage `msgpack:"children"`

	Key      string             `msgpack:"key"`
	Nested   bool               `msgpack:"nested"`
	Match    msgpack.RawMessage `msgpack:"match"`
	Range    msgpack.RawMessage `msgpack:"range"`
	Wildcard msgpack.RawMessage `msgpack:"wildcard"`
	Exists   msgpack.RawMessage `msgpack:"exists"`
}

func parseMsgpackNode(data []byte) (Expression, error) {
	var raw rawMsgpackNode
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid node: %w", err)
	}

	if raw.Operator != "" {
		op := BooleanOperator(raw.Operator)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown boolean operator %q", raw.Operator)
		}
		children := make([]Expression, 0, len(raw.Children))
		for i, child := range raw.Children {
			expr, err := parseMsgpackNode(child)
			if err != nil {
				return nil, fmt.Errorf("invalid child %d: %w", i, err)
			}
			children = append(children, expr)
		}
		return &BooleanExpression{Operator: op, Children: children}, nil
	}

	payload, err := parseMsgpackPayload(&raw)
	if err != nil {
		return nil, err
	}
	return &FieldExpression{
		Key:     raw.Key,
		Payload: payload,
		Nested:  raw.Nested,
	}, nil
}

func parseMsgpackPayload(raw *rawMsgpackNode) (Payload, error) {
	var payload Payload
	count := 0

	if presentMsgpack(raw.Match) {
		count++
		var m struct {
			Value any `msgpack:"value"`
		}
		if err := msgpack.Unmarshal(raw.Match, &m); err != nil {
			return nil, fmt.Errorf("invalid match payload: %w", err)
		}
		payload = &MatchPayload{Value: m.Value}
	}

	if presentMsgpack(raw.Range) {
		count++
		var r struct {
			Operator string `msgpack:"operator"`
			Value    any    `msgpack:"value"`
		}
		if err := msgpack.Unmarshal(raw.Range, &r); err != nil {
			return nil, fmt.Errorf("invalid range payload: %w", err)
		}
		op := RangeOperator(r.Operator)
		if !op.Valid() {
			return nil, fmt.Errorf("unknown range operator %q", r.Operator)
		}
		payload = &RangePayload{Operator: op, Value: r.Value}
	}

	if presentMsgpack(raw.Wildcard) {
		count++
		var w struct {
			Pattern string `msgpack:"pattern"`
		}
		if err := msgpack.Unmarshal(raw.Wildcard, &w); err != nil {
			return nil, fmt.Errorf("invalid wildcard payload: %w", err)
		}
		payload = &WildcardPayload{Pattern: w.Pattern}
	}

	if presentMsgpack(raw.Exists) {
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

func presentMsgpack(raw msgpack.RawMessage) bool {
	return len(raw) > 0 && !isMsgpackNil(raw)
}

// isMsgpackNil reports whether data is the single-byte MessagePack nil value.
func isMsgpackNil(data []byte) bool {
	return len(data) == 1 && data[0] == 0xc0
}
