package forms

import "errors"

var (
	ErrFormNotFound      = errors.New("form not found")
	ErrFieldNotFound     = errors.New("form field not found")
	ErrInvalidDefinition = errors.New("invalid form definition")
)
