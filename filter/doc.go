// Package filter defines the closed expression tree the validation and
// rewrite engine operates on, plus ingestion from external filter parsers.
//
// The filter language grammar itself lives outside this module. A parser
// turns filter text into a node tree and hands it over either in process
// (already built from this package's types) or serialized as JSON or
// MessagePack. Ingestion converts the serialized form into the closed
// Expression variant once, so nothing downstream depends on the external
// parser's node shapes.
//
// # Node Shapes
//
// Boolean nodes combine children with and/or/not:
//
//	{"operator": "and", "children": [ ... ]}
//
// Field nodes compare one dot-delimited field path against exactly one
// payload member:
//
//	{"key": "alert.attributes.enabled", "match": {"value": true}}
//	{"key": "alert.updated_at", "range": {"operator": "gte", "value": "2026-01-01"}}
//	{"key": "alert.attributes.name", "wildcard": {"pattern": "prod-*"}}
//	{"key": "alert.attributes.muted", "exists": {}}
//
// Field nodes whose key crosses a nested boundary in the index mapping set
// "nested": true; the engine stops sub-field validation at that boundary.
//
// # Basic Usage
//
// Parse node JSON received from the external parser:
//
//	expr, err := filter.Parse(data)
//	if err != nil {
//	    return err // malformed tree
//	}
//
// Rewritten trees serialize back to the same shape:
//
//	data, err := filter.Encode(rewritten)
//
// # Payload Opacity
//
// Payload values (match values, range bounds, wildcard patterns) are opaque
// to the engine: validation never inspects them and rewriting passes them
// through unchanged. Only field keys are classified and rewritten.
package filter
