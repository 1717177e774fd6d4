package binder

import (
	"fmt"
	"net/http"
)

// Form binds an application/x-www-form-urlencoded body into a struct using
// `form` tags, with the same tag syntax and types as Query.
//
// Requests without a body content type return ErrBinderNotApplicable so Form
// can be listed next to Query for routes that accept GET and POST
// submissions. Other media types return ErrUnsupportedMediaType.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		ok, err := isFormBody(r)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBinderNotApplicable
		}

		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)
	}
}
