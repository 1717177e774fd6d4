package binder

import "net/http"

// Query binds URL query parameters into a struct.
//
// Struct tags:
//   - `query:"name"` binds parameter "name"
//   - `query:"-"` skips the field
//   - `query:"name,split"` also splits values on commas
//
// Supported types are strings, signed and unsigned integers, floats, bools,
// slices of those for repeated parameters, and pointers for optional values.
//
//	type ResultsRequest struct {
//		Query   string `query:"query"`
//		Page    int    `query:"page"`
//		Results int    `query:"results"`
//	}
//
//	http.HandleFunc("/results", handler.Wrap(h,
//		handler.WithBinders[ResultsRequest](binder.Query()),
//	))
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
