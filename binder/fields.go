package binder

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
)

const formMediaType = "application/x-www-form-urlencoded"

// Field is one name/value pair of a submission.
type Field struct {
	Name  string
	Value string
}

// Fields is a submission materialized in payload order. Binders rewrite its
// values in place; nothing else observes it while a binder runs.
type Fields []Field

// ParseFields decodes an application/x-www-form-urlencoded payload keeping
// the order of its pairs. A pair without "=" has an empty value. Semicolon
// separators are rejected, matching url.ParseQuery.
func ParseFields(encoded string) (Fields, error) {
	var fields Fields
	for encoded != "" {
		var pair string
		pair, encoded, _ = strings.Cut(encoded, "&")
		if pair == "" {
			continue
		}
		if strings.Contains(pair, ";") {
			return nil, fmt.Errorf("%w: invalid semicolon separator", ErrInvalidForm)
		}

		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return fields, nil
}

// Encode is the inverse of ParseFields and preserves field order.
func (f Fields) Encode() string {
	var b strings.Builder
	for i, fld := range f {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(fld.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fld.Value))
	}
	return b.String()
}

// Values converts the fields to url.Values. Order across names is lost;
// order of repeated names is kept.
func (f Fields) Values() url.Values {
	v := make(url.Values, len(f))
	for _, fld := range f {
		v[fld.Name] = append(v[fld.Name], fld.Value)
	}
	return v
}

// Get returns the first value for name, or "".
func (f Fields) Get(name string) string {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value
		}
	}
	return ""
}

// isFormBody reports whether r carries a url-encoded body, and fails for
// bodies of any other media type.
func isFormBody(r *http.Request) (bool, error) {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return false, nil
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}
	if mediaType != formMediaType {
		return false, fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, formMediaType)
	}
	return true, nil
}
