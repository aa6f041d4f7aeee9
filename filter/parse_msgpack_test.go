package filter

import (
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func mustMsgpack(t *testing.T, v any) []byte {
	t.Helper()
	data, err := msgpack.Marshal(v)
	if err != nil {
		t.Fatalf("msgpack marshal failed: %v", err)
	}
	return data
}

func TestParseMsgpackEmpty(t *testing.T) {
	expr, err := ParseMsgpack(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if expr != nil {
		t.Errorf("expected nil expression, got %T", expr)
	}

	expr, err = ParseMsgpack([]byte{0xc0})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if expr != nil {
		t.Errorf("expected nil expression, got %T", expr)
	}
}

func TestParseMsgpackTree(t *testing.T) {
	data := mustMsgpack(t, map[string]any{
		"operator": "and",
		"children": []any{
			map[string]any{
				"key":   "foo.attributes.title",
				"match": map[string]any{"value": "x"},
			},
			map[string]any{
				"key":    "alert.attributes.actions.actionTypeId",
				"nested": true,
				"match":  map[string]any{"value": ".server-log"},
			},
		},
	})

	expr, err := ParseMsgpack(data)
	if err != nil {
		t.Fatalf("ParseMsgpack failed: %v", err)
	}

	root, ok := expr.(*BooleanExpression)
	if !ok {
		t.Fatalf("expected BooleanExpression, got %T", expr)
	}
	if root.Operator != OperatorAnd {
		t.Errorf("expected and, got %s", root.Operator)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}

	first := root.Children[0].(*FieldExpression)
	if first.Key != "foo.attributes.title" {
		t.Errorf("expected key foo.attributes.title, got %s", first.Key)
	}
	match, ok := first.Payload.(*MatchPayload)
	if !ok {
		t.Fatalf("expected MatchPayload, got %T", first.Payload)
	}
	if match.Value != "x" {
		t.Errorf("expected value x, got %v", match.Value)
	}

	second := root.Children[1].(*FieldExpression)
	if !second.Nested {
		t.Error("expected nested field")
	}
}

func TestParseMsgpackRange(t *testing.T) {
	data := mustMsgpack(t, map[string]any{
		"key":   "foo.attributes.bytes",
		"range": map[string]any{"operator": "lte", "value": 4096},
	})

	expr, err := ParseMsgpack(data)
	if err != nil {
		t.Fatalf("ParseMsgpack failed: %v", err)
	}
	field := expr.(*FieldExpression)
	rp, ok := field.Payload.(*RangePayload)
	if !ok {
		t.Fatalf("expected RangePayload, got %T", field.Payload)
	}
	if rp.Operator != RangeLessThanOrEqual {
		t.Errorf("expected lte, got %s", rp.Operator)
	}
}

func TestParseMsgpackErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		wantErr string
	}{
		{
			name:    "unknown boolean operator",
			input:   map[string]any{"operator": "nand", "children": []any{}},
			wantErr: `unknown boolean operator "nand"`,
		},
		{
			name:    "no payload",
			input:   map[string]any{"key": "foo.attributes.bytes"},
			wantErr: "has no payload",
		},
		{
			name: "two payloads",
			input: map[string]any{
				"key":    "foo.attributes.bytes",
				"match":  map[string]any{"value": 1},
				"exists": map[string]any{},
			},
			wantErr: "payloads, want 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMsgpack(mustMsgpack(t, tt.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
