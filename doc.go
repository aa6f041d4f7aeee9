// Package filterscope validates and rewrites filter expressions over
// logically distinct object types that share one physical index.
//
// Several object types are multiplexed into a single index: each type keeps
// its business attributes under its own sub-schema, while a fixed set of
// metadata fields (update timestamps, references, and so on) is shared by
// every type at the top level. Callers write filters against the logical
// view:
//
//	foo.attributes.title: "dashboard"     business attribute of type foo
//	foo.updated_at >= "2026-01-01"        shared metadata field, scoped to foo
//
// Before such a filter can run, every key must be checked against the types
// the caller may query and against the index mapping, and the tree must be
// rewritten to storage-level field names. Metadata references additionally
// get an explicit type clause injected, so a filter on foo.updated_at can
// never match documents of another type that shares the index.
//
// # Basic Usage
//
//	rw, err := filterscope.New(filterscope.Config{Parser: parser})
//	if err != nil {
//	    return err
//	}
//
//	rewritten, err := rw.ConvertText([]string{"foo"}, `foo.attributes.bytes >= 1024`, m)
//	if err != nil {
//	    var badReq *filterscope.BadRequestError
//	    if errors.As(err, &badReq) {
//	        // caller-input fault, surface as HTTP 400 / codes.InvalidArgument
//	    }
//	    return err
//	}
//
// Validate reports every problem in one pass without failing, for callers
// that aggregate diagnostics:
//
//	findings := rw.Validate(tree, []string{"foo"}, m, false)
//
// # Failure Policy
//
// Validate and Convert share one walker and one classifier and differ only
// in failure policy. Validate collects a Finding per field node, errors
// included. Convert is all-or-nothing: the first classification error in
// traversal order aborts the rewrite with a *BadRequestError, because a
// partially valid query is not a safe result.
//
// # Purity
//
// Every call is a pure function of its inputs: no caching, no shared mutable
// state, and input trees are never mutated. Concurrent use needs no
// synchronization.
package filterscope
