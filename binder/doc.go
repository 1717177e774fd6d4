// Package binder prepares form submissions before handlers read them.
//
// Two kinds of binders live here.
//
// Form binders (Simple and Advanced) rewrite submitted values with a
// Sanitizer. They are built once at startup from an explicit *forms.Form
// handle and fail fast when the form or field is missing:
//
//	search := registry.MustLookup("searchForm")
//	simple, err := binder.NewSimple(search, "query", sanitizer.New())
//	if err != nil {
//		return err // unknown field: configuration error
//	}
//	r.With(binder.Middleware(simple)).Get("/results", results)
//
// Simple sanitizes one named field. Advanced sanitizes every input field of
// the submission in payload order, skipping fields the form declares as
// select or textarea. The submission is parsed into Fields, an ordered,
// materialized slice, so binders never iterate a live collection while
// mutating it. Middleware runs synchronously before the next handler and
// writes the rewritten payload back onto the request.
//
// Struct binders (Query and Form) decode the already-sanitized request into
// typed request structs for handler.Wrap:
//
//	type ResultsRequest struct {
//		Query   string `query:"query"`
//		Page    int    `query:"page"`
//		Results int    `query:"results"`
//	}
package binder
