// Package handler turns typed request handlers into http.HandlerFuncs.
//
// A HandlerFunc receives a Context and a request struct decoded by one or
// more binders, and returns a Response:
//
//	type ResultsRequest struct {
//		Query string `query:"query"`
//		Page  int    `query:"page"`
//	}
//
//	results := func(ctx handler.Context, req ResultsRequest) handler.Response {
//		if req.Query == "" {
//			return handler.Redirect("/")
//		}
//		return handler.JSON(req)
//	}
//
//	r.Get("/results", handler.Wrap(results,
//		handler.WithBinders[ResultsRequest](binder.Query()),
//		handler.WithErrorHandler[ResultsRequest](onError),
//	))
//
// Responses cover JSON, redirects and HTML rendered from templ components.
// Errors from binders and responses go to the configured ErrorHandler;
// NewErrorHandler classifies HTTPError, ValidationError and binder errors
// into status codes, logs them and renders an error page.
package handler
