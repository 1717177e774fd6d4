package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")

	// ErrBinderNotApplicable is returned by a struct binder when the request
	// carries no data for it (for example Form on a GET request).
	ErrBinderNotApplicable = errors.New("binder not applicable to request")

	// ErrNilSanitizer is returned when a form binder is built without a sanitizer.
	ErrNilSanitizer = errors.New("nil sanitizer")
)

// ErrBodyTooLarge is returned when a submission exceeds the middleware's body limit.
var ErrBodyTooLarge = errors.New("form body too large")
