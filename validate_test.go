package filterscope

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/sharedindex/filterscope/filter"
	"github.com/sharedindex/filterscope/mapping"
)

func testMapping(t *testing.T) mapping.Mapping {
	t.Helper()
	m, err := mapping.NewBuilder().
		Type("foo").
		Field("title", mapping.KindText).
		Field("description", mapping.KindText).
		Field("bytes", mapping.KindNumber).
		Object("stats", func(o *mapping.PropertyBuilder) {
			o.Field("views", mapping.KindNumber)
		}).
		Type("alert").
		Field("enabled", mapping.KindKeyword).
		Nested("actions").
		Type("hiddentype").
		Field("title", mapping.KindText).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return m
}

func testRewriter(t *testing.T, cfg Config) *Rewriter {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	rw, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return rw
}

func match(key string, value any) *filter.FieldExpression {
	return &filter.FieldExpression{Key: key, Payload: &filter.MatchPayload{Value: value}}
}

func TestValidateClassification(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	tests := []struct {
		name  string
		key   string
		types []string
		want  Finding
	}{
		{
			name:  "attribute field exists",
			key:   "foo.attributes.title",
			types: []string{"foo"},
			want:  Finding{Key: "foo.attributes.title", Type: "foo"},
		},
		{
			name:  "attribute sub-field exists",
			key:   "foo.attributes.stats.views",
			types: []string{"foo"},
			want:  Finding{Key: "foo.attributes.stats.views", Type: "foo"},
		},
		{
			name:  "metadata field",
			key:   "foo.updated_at",
			types: []string{"foo"},
			want:  Finding{Key: "foo.updated_at", Type: "foo", IsSavedObjectAttr: true},
		},
		{
			name:  "empty key",
			key:   "",
			types: []string{"foo", "alert"},
			want: Finding{
				Error: "The key is empty and needs to be wrapped by a saved object type like foo,alert",
			},
		},
		{
			name:  "unknown prefix",
			key:   "bar.title",
			types: []string{"foo", "alert"},
			want: Finding{
				Key:               "bar.title",
				IsSavedObjectAttr: true,
				Error:             "This key 'bar.title' need to be wrapped by a saved object type like foo,alert",
			},
		},
		{
			name:  "known type not allowed",
			key:   "hiddentype.title",
			types: []string{"foo"},
			want: Finding{
				Key:               "hiddentype.title",
				Type:              "hiddentype",
				IsSavedObjectAttr: true,
				Error:             "This type hiddentype is not allowed",
			},
		},
		{
			name:  "missing attributes segment",
			key:   "foo.bytes",
			types: []string{"foo"},
			want: Finding{
				Key:   "foo.bytes",
				Type:  "foo",
				Error: "This key 'foo.bytes' does NOT match the filter proposition SavedObjectType.attributes.key",
			},
		},
		{
			name:  "attribute field missing from mapping",
			key:   "foo.attributes.updatedAt",
			types: []string{"foo"},
			want: Finding{
				Key:   "foo.attributes.updatedAt",
				Type:  "foo",
				Error: "This key 'foo.attributes.updatedAt' does NOT exist in foo saved object index patterns",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := rw.Validate(match(tt.key, "x"), tt.types, m, false)
			if len(findings) != 1 {
				t.Fatalf("expected 1 finding, got %d", len(findings))
			}
			if !reflect.DeepEqual(findings[0], tt.want) {
				t.Errorf("expected %+v, got %+v", tt.want, findings[0])
			}
		})
	}
}

func TestValidateInjectableMetaFields(t *testing.T) {
	m := testMapping(t)

	// updatedAt is not under foo's properties; with an injected metadata
	// list it classifies as a reserved metadata field anyway.
	rw := testRewriter(t, Config{MetaFields: []string{"type", "updatedAt"}})

	findings := rw.Validate(match("foo.updatedAt", 5678654567), []string{"foo"}, m, false)
	want := Finding{Key: "foo.updatedAt", Type: "foo", IsSavedObjectAttr: true}
	if len(findings) != 1 || !reflect.DeepEqual(findings[0], want) {
		t.Errorf("expected %+v, got %+v", want, findings)
	}

	// The default list does not contain updatedAt, so the same key is a
	// malformed attribute path there.
	rw = testRewriter(t, Config{})
	findings = rw.Validate(match("foo.updatedAt", 5678654567), []string{"foo"}, m, false)
	if len(findings) != 1 || findings[0].Error == "" {
		t.Errorf("expected malformed path error, got %+v", findings)
	}
}

func TestValidateTraversalOrderAndPaths(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	tree := &filter.BooleanExpression{
		Operator: filter.OperatorAnd,
		Children: []filter.Expression{
			match("foo.attributes.title", "a"),
			&filter.BooleanExpression{
				Operator: filter.OperatorOr,
				Children: []filter.Expression{
					match("foo.updated_at", "2026-01-01"),
					&filter.BooleanExpression{
						Operator: filter.OperatorNot,
						Children: []filter.Expression{
							match("bar.title", "b"),
						},
					},
				},
			},
			match("foo.attributes.bytes", 1),
		},
	}

	findings := rw.Validate(tree, []string{"foo"}, m, false)
	if len(findings) != 4 {
		t.Fatalf("expected 4 findings, got %d", len(findings))
	}

	wantPaths := []string{"0", "1.0", "1.1.0", "2"}
	wantKeys := []string{"foo.attributes.title", "foo.updated_at", "bar.title", "foo.attributes.bytes"}
	for i, f := range findings {
		if f.ASTPath != wantPaths[i] {
			t.Errorf("finding %d: expected astPath %s, got %s", i, wantPaths[i], f.ASTPath)
		}
		if f.Key != wantKeys[i] {
			t.Errorf("finding %d: expected key %s, got %s", i, wantKeys[i], f.Key)
		}
	}

	// Only the bar.title leaf is in error; findings report it without
	// aborting the pass.
	if findings[2].Error == "" {
		t.Error("expected error on bar.title finding")
	}
	for _, i := range []int{0, 1, 3} {
		if findings[i].Error != "" {
			t.Errorf("finding %d: unexpected error %q", i, findings[i].Error)
		}
	}
}

func TestValidateStablePaths(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	tree := &filter.BooleanExpression{
		Operator: filter.OperatorOr,
		Children: []filter.Expression{
			match("foo.attributes.title", "a"),
			match("foo.attributes.description", "b"),
		},
	}

	first := rw.Validate(tree, []string{"foo"}, m, false)
	second := rw.Validate(tree, []string{"foo"}, m, false)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestValidateRootLeafPath(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	findings := rw.Validate(match("foo.attributes.title", "a"), []string{"foo"}, m, false)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].ASTPath != "" {
		t.Errorf("expected empty astPath for root leaf, got %q", findings[0].ASTPath)
	}
}

func TestValidateNestedGating(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	nested := &filter.FieldExpression{
		Key:     "alert.attributes.bogus.actionTypeId",
		Payload: &filter.MatchPayload{Value: ".server-log"},
		Nested:  true,
	}

	// With hasNestedKey the existence check stops at the nested shape.
	findings := rw.Validate(nested, []string{"alert"}, m, true)
	if len(findings) != 1 || findings[0].Error != "" {
		t.Errorf("expected clean finding with hasNestedKey, got %+v", findings)
	}

	// Without it the nested flag is ignored and the key must resolve.
	findings = rw.Validate(nested, []string{"alert"}, m, false)
	if len(findings) != 1 || findings[0].Error == "" {
		t.Errorf("expected existence error without hasNestedKey, got %+v", findings)
	}
}

func TestValidateNilTree(t *testing.T) {
	m := testMapping(t)
	rw := testRewriter(t, Config{})

	findings := rw.Validate(nil, []string{"foo"}, m, false)
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestHasNestedLeaf(t *testing.T) {
	plain := &filter.BooleanExpression{
		Operator: filter.OperatorAnd,
		Children: []filter.Expression{match("foo.attributes.title", "a")},
	}
	if HasNestedLeaf(plain) {
		t.Error("expected no nested leaf")
	}

	withNested := &filter.BooleanExpression{
		Operator: filter.OperatorAnd,
		Children: []filter.Expression{
			match("foo.attributes.title", "a"),
			&filter.FieldExpression{
				Key:     "alert.attributes.actions.actionTypeId",
				Payload: &filter.MatchPayload{Value: "x"},
				Nested:  true,
			},
		},
	}
	if !HasNestedLeaf(withNested) {
		t.Error("expected nested leaf")
	}

	if HasNestedLeaf(nil) {
		t.Error("expected no nested leaf for nil tree")
	}
}

func TestNewConfigValidation(t *testing.T) {
	if _, err := New(Config{MetaFields: []string{"type", ""}}); err == nil {
		t.Error("expected error for empty meta field name")
	}

	rw, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if rw == nil {
		t.Fatal("expected rewriter")
	}
}
