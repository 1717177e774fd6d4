package forms

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Element is the HTML element a field is rendered as.
type Element string

const (
	ElementInput    Element = "input"
	ElementSelect   Element = "select"
	ElementTextarea Element = "textarea"
)

// Option is one choice of a select field.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Field is a named control inside a form.
type Field struct {
	Name     string   `yaml:"name"`
	Label    string   `yaml:"label"`
	Element  Element  `yaml:"element"`
	Type     string   `yaml:"type"`
	Multiple bool     `yaml:"multiple"`
	Options  []Option `yaml:"options"`
}

// IsInput reports whether the field is an <input> element.
func (f Field) IsInput() bool {
	return f.Element == "" || f.Element == ElementInput
}

// Form is a form definition. Field names may repeat; the site's advanced
// form has two "type" inputs that submit as a list.
type Form struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Action string  `yaml:"action"`
	Method string  `yaml:"method"`
	Fields []Field `yaml:"fields"`
}

// Field returns the first declared field with the given name.
func (f *Form) Field(name string) (Field, error) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q in form %q", ErrFieldNotFound, name, f.ID)
}

// HasField reports whether the form declares a field named name.
func (f *Form) HasField(name string) bool {
	return slices.ContainsFunc(f.Fields, func(fld Field) bool { return fld.Name == name })
}

// IsInput reports whether a submitted field should be treated as an <input>.
// Names the form does not declare count as inputs.
func (f *Form) IsInput(name string) bool {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.IsInput()
		}
	}
	return true
}

func (f *Form) normalize() error {
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		return fmt.Errorf("%w: form without id", ErrInvalidDefinition)
	}

	f.Method = strings.ToUpper(strings.TrimSpace(f.Method))
	switch f.Method {
	case "":
		f.Method = http.MethodGet
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("%w: form %q: unsupported method %q", ErrInvalidDefinition, f.ID, f.Method)
	}

	for i := range f.Fields {
		fld := &f.Fields[i]
		if strings.TrimSpace(fld.Name) == "" {
			return fmt.Errorf("%w: form %q: field %d has no name", ErrInvalidDefinition, f.ID, i)
		}
		switch fld.Element {
		case "":
			fld.Element = ElementInput
		case ElementInput, ElementSelect, ElementTextarea:
		default:
			return fmt.Errorf("%w: form %q: field %q: unknown element %q", ErrInvalidDefinition, f.ID, fld.Name, fld.Element)
		}
		if fld.Element == ElementInput && fld.Type == "" {
			fld.Type = "text"
		}
		if fld.Element == ElementSelect && len(fld.Options) == 0 {
			return fmt.Errorf("%w: form %q: select %q has no options", ErrInvalidDefinition, f.ID, fld.Name)
		}
	}
	return nil
}
