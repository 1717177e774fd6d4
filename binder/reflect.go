package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// tagOptions is the parsed form of a `query:"name,opt"` or `form:"name,opt"` tag.
type tagOptions struct {
	name  string
	skip  bool
	split bool
}

// bindToStruct copies values into the tagged fields of the struct v points to.
// Fields without a tag bind to their lower-cased Go name; missing values leave
// the field untouched.
func bindToStruct(v any, tagName string, values map[string][]string, bindErr error) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: target must be a non-nil pointer", bindErr)
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target must be a pointer to struct", bindErr)
	}

	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}

		opts := parseTag(sf, tagName)
		if opts.skip {
			continue
		}

		fieldValues := values[opts.name]
		if len(fieldValues) == 0 {
			continue
		}
		if opts.split {
			fieldValues = splitValues(fieldValues)
		}

		if err := setFieldValue(field, sf.Type, fieldValues); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func parseTag(sf reflect.StructField, tagName string) tagOptions {
	tag := sf.Tag.Get(tagName)
	switch tag {
	case "":
		return tagOptions{name: strings.ToLower(sf.Name)}
	case "-":
		return tagOptions{skip: true}
	}

	parts := strings.Split(tag, ",")
	opts := tagOptions{name: parts[0]}
	if opts.name == "" {
		opts.name = strings.ToLower(sf.Name)
	}
	for _, p := range parts[1:] {
		if p == "split" {
			opts.split = true
		}
	}
	return opts
}

// splitValues expands comma-separated entries: ["a,b", "c"] becomes ["a", "b", "c"].
func splitValues(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}

func setFieldValue(field reflect.Value, typ reflect.Type, values []string) error {
	switch typ.Kind() {
	case reflect.Pointer:
		if field.IsNil() {
			field.Set(reflect.New(typ.Elem()))
		}
		return setFieldValue(field.Elem(), typ.Elem(), values)
	case reflect.Slice:
		slice := reflect.MakeSlice(typ, len(values), len(values))
		for i, value := range values {
			if err := setScalar(slice.Index(i), typ.Elem(), value); err != nil {
				return err
			}
		}
		field.Set(slice)
		return nil
	}
	return setScalar(field, typ, values[0])
}

func setScalar(field reflect.Value, typ reflect.Type, value string) error {
	switch typ.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(value), 10, typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), typ.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type %s", typ.Kind())
	}
	return nil
}

// parseBool accepts strconv.ParseBool input plus the values browsers send
// for checkboxes ("on") and common yes/no spellings.
func parseBool(value string) (bool, error) {
	if b, err := strconv.ParseBool(value); err == nil {
		return b, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "yes":
		return true, nil
	case "off", "no", "":
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value %q", value)
}
