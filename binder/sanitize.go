package binder

import (
	"context"
	"fmt"

	"github.com/mtgqe/cardsearch/pkg/forms"
)

// Sanitizer rewrites a single field value. *sanitizer.Text implements it.
type Sanitizer interface {
	Sanitize(ctx context.Context, s string) string
}

// SanitizerFunc adapts a plain function to Sanitizer.
type SanitizerFunc func(ctx context.Context, s string) string

func (f SanitizerFunc) Sanitize(ctx context.Context, s string) string { return f(ctx, s) }

// FormBinder rewrites the fields of a submission of one form.
type FormBinder interface {
	// Form is the definition the binder was built for.
	Form() *forms.Form
	// Kind names the binder variant for logs.
	Kind() string
	// Bind rewrites fields in place and returns how many values it sanitized.
	Bind(ctx context.Context, fields Fields) int
}

// Simple sanitizes the values of a single named field.
type Simple struct {
	form      *forms.Form
	field     string
	sanitizer Sanitizer
}

// NewSimple binds s to the field named field of form. It fails when form is
// nil, when the form does not declare the field, or when s is nil.
func NewSimple(form *forms.Form, field string, s Sanitizer) (*Simple, error) {
	if form == nil {
		return nil, fmt.Errorf("%w: simple binder for field %q", forms.ErrFormNotFound, field)
	}
	if _, err := form.Field(field); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNilSanitizer
	}
	return &Simple{form: form, field: field, sanitizer: s}, nil
}

func (b *Simple) Form() *forms.Form { return b.form }
func (b *Simple) Kind() string      { return "simple" }

// Field returns the name of the sanitized field.
func (b *Simple) Field() string { return b.field }

// Bind sanitizes every occurrence of the bound field. A submission without
// the field is left as is.
func (b *Simple) Bind(ctx context.Context, fields Fields) int {
	n := 0
	for i := range fields {
		if fields[i].Name != b.field {
			continue
		}
		fields[i].Value = b.sanitizer.Sanitize(ctx, fields[i].Value)
		n++
	}
	return n
}

// Advanced sanitizes every input field of a submission, whatever its name
// or type. Fields the form declares as select or textarea are not inputs and
// keep their values.
type Advanced struct {
	form      *forms.Form
	sanitizer Sanitizer
}

// NewAdvanced binds s to every input of form.
func NewAdvanced(form *forms.Form, s Sanitizer) (*Advanced, error) {
	if form == nil {
		return nil, fmt.Errorf("%w: advanced binder", forms.ErrFormNotFound)
	}
	if s == nil {
		return nil, ErrNilSanitizer
	}
	return &Advanced{form: form, sanitizer: s}, nil
}

func (b *Advanced) Form() *forms.Form { return b.form }
func (b *Advanced) Kind() string      { return "advanced" }

// Bind walks fields in payload order and sanitizes each input.
func (b *Advanced) Bind(ctx context.Context, fields Fields) int {
	n := 0
	for i := range fields {
		if !b.form.IsInput(fields[i].Name) {
			continue
		}
		fields[i].Value = b.sanitizer.Sanitize(ctx, fields[i].Value)
		n++
	}
	return n
}
