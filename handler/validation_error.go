package handler

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/mtgqe/cardsearch/pkg/validator"
)

// ValidationError maps field names to messages.
type ValidationError url.Values

func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Error lists the first message of every field, sorted by field name.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if msgs := e[field]; len(msgs) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, msgs[0]))
		}
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}

// OrNil returns nil for an empty ValidationError so callers can return it
// directly as an error.
func (e ValidationError) OrNil() error {
	if e.IsEmpty() {
		return nil
	}
	return e
}

// asValidationError finds a ValidationError or validator.ValidationErrors in
// the chain of err.
func asValidationError(err error) (ValidationError, bool) {
	var verr ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return ValidationError(verrs.Values()), true
	}
	return nil, false
}
