package validator

import (
	"fmt"
	"slices"
	"strings"
)

// InList passes when value is one of allowed.
func InList[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %s", join(allowed))},
	}
}

// When applies rule only if cond holds.
func When(cond bool, rule Rule) Rule {
	if !cond {
		return Rule{Check: func() bool { return true }}
	}
	return rule
}

func join[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
