// Package advquery turns an advanced search submission into the parameter
// set a card query runs on.
package advquery

import (
	"context"
	"encoding/json"
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/mtgqe/cardsearch/handler"
)

const (
	DefaultPage    = 1
	DefaultResults = 10

	// Unbounded marks an open end of a Range.
	Unbounded = -1
)

// Range is an inclusive [from, to] bound; either end may be Unbounded.
type Range [2]int

// Params is the normalized parameter set. Values are a string, a []string
// for repeated fields, or a Range.
type Params map[string]any

// Query is a parsed advanced search request.
type Query struct {
	Page    int
	Results int
	Params  Params
}

var conversions = map[string]string{
	"type":       "types",
	"subtype":    "subtypes",
	"format":     "legal_formats",
	"expansions": "sets",
}

// ranged fields accept is_<k>, <k>_from and <k>_to.
var ranged = []string{"white", "blue", "red", "black", "green", "power", "toughness", "cmc"}

// reserved parameters control paging and decoding and never reach Params.
var reserved = []string{"page", "results", "decode"}

// Sanitizer cleans a single value. *sanitizer.Text implements it.
type Sanitizer interface {
	Sanitize(ctx context.Context, s string) string
}

// Parse reads paging and the parameter set from a form submission. An
// encoded parameter set (decode=true) is not accepted here; it only arrives
// in the URL of a pagination link and goes through ParseEncoded. All
// problems are reported together as a handler.ValidationError.
func Parse(values url.Values) (Query, error) {
	verr := handler.NewValidationError()
	q := Query{
		Page:    positive(values, "page", DefaultPage, verr),
		Results: positive(values, "results", DefaultResults, verr),
	}
	if Decoded(values) {
		verr.Add("decode", "encoded queries must be passed in the URL")
	} else {
		q.Params = normalize(values, verr)
	}

	if err := verr.OrNil(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// ParseEncoded reads a pagination link: paging plus the JSON parameter set
// in the query parameter. The set is not trusted. Every string is passed
// through s, keys must be lower-case identifiers, ranged keys must hold a
// [from, to] pair of integers and all other values must be a string or a
// list of strings.
func ParseEncoded(ctx context.Context, values url.Values, s Sanitizer) (Query, error) {
	verr := handler.NewValidationError()
	q := Query{
		Page:    positive(values, "page", DefaultPage, verr),
		Results: positive(values, "results", DefaultResults, verr),
	}

	dec := json.NewDecoder(strings.NewReader(values.Get("query")))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		verr.Add("query", "must be a JSON object")
	} else {
		q.Params = cleanEncoded(ctx, raw, s, verr)
	}

	if err := verr.OrNil(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Normalize converts submitted values into Params:
//   - empty values are dropped, and keys left without values disappear;
//   - type, subtype, format and expansions are renamed;
//   - is_<k> becomes the Range [1, Unbounded];
//   - <k>_from and <k>_to become [from, to] and take precedence over is_<k>;
//   - the type values are joined with single spaces.
//
// Paging keys are ignored.
func Normalize(values url.Values) (Params, error) {
	verr := handler.NewValidationError()
	params := normalize(values, verr)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return params, nil
}

func normalize(values url.Values, verr handler.ValidationError) Params {
	collected := make(map[string][]string, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if slices.Contains(reserved, key) {
			continue
		}
		vals := nonEmpty(values[key])
		if len(vals) == 0 {
			continue
		}
		if to, ok := conversions[key]; ok {
			key = to
		}
		collected[key] = append(collected[key], vals...)
	}

	params := make(Params, len(collected))
	for key, vals := range collected {
		if len(vals) == 1 {
			params[key] = vals[0]
		} else {
			params[key] = vals
		}
	}

	for _, k := range ranged {
		isKey, fromKey, toKey := "is_"+k, k+"_from", k+"_to"
		if _, ok := params[isKey]; ok {
			delete(params, isKey)
			params[k] = Range{1, Unbounded}
		}

		_, hasFrom := params[fromKey]
		_, hasTo := params[toKey]
		if hasFrom || hasTo {
			params[k] = Range{
				bound(params, fromKey, verr),
				bound(params, toKey, verr),
			}
		}
		delete(params, fromKey)
		delete(params, toKey)
	}

	if types, ok := params["types"]; ok {
		if v, ok := types.([]string); ok {
			params["types"] = strings.Join(v, " ")
		}
	}
	return params
}

// Encode serializes p for a decode=true request.
func (p Params) Encode() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// PageURL links page n of q's results under path.
func (q Query) PageURL(path string, n int) string {
	v := url.Values{}
	v.Set("decode", "true")
	v.Set("page", strconv.Itoa(n))
	v.Set("results", strconv.Itoa(q.Results))
	v.Set("query", q.Params.Encode())
	return path + "?" + v.Encode()
}

// Decoded reports whether values carry an encoded parameter set
// (decode=true) rather than a form submission. Callers check the URL query
// only, which is where pagination links put it.
func Decoded(values url.Values) bool {
	ok, _ := strconv.ParseBool(strings.TrimSpace(values.Get("decode")))
	return ok
}

func nonEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func bound(params Params, key string, verr handler.ValidationError) int {
	raw, ok := params[key]
	if !ok {
		return Unbounded
	}
	s, ok := raw.(string)
	if !ok {
		verr.Add(key, "must be a single integer")
		return Unbounded
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		verr.Add(key, "must be an integer")
		return Unbounded
	}
	return n
}

func positive(values url.Values, key string, def int, verr handler.ValidationError) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		verr.Add(key, "must be a positive integer")
		return def
	}
	return n
}

func cleanEncoded(ctx context.Context, raw map[string]any, s Sanitizer, verr handler.ValidationError) Params {
	params := make(Params, len(raw))
	for key, v := range raw {
		if !validKey(key) {
			verr.Add("query", "invalid parameter name")
			continue
		}

		if slices.Contains(ranged, key) {
			r, ok := asRange(v)
			if !ok {
				verr.Add(key, "must be a pair of integers")
				continue
			}
			params[key] = r
			continue
		}

		switch val := v.(type) {
		case string:
			if clean := s.Sanitize(ctx, val); strings.TrimSpace(clean) != "" {
				params[key] = clean
			}
		case []any:
			list := make([]string, 0, len(val))
			for _, item := range val {
				str, ok := item.(string)
				if !ok {
					verr.Add(key, "must be a list of strings")
					list = nil
					break
				}
				if clean := s.Sanitize(ctx, str); strings.TrimSpace(clean) != "" {
					list = append(list, clean)
				}
			}
			if len(list) > 0 {
				params[key] = list
			}
		default:
			verr.Add(key, "must be a string or a list of strings")
		}
	}
	return params
}

func asRange(v any) (Range, bool) {
	pair, ok := v.([]any)
	if !ok || len(pair) != 2 {
		return Range{}, false
	}
	var r Range
	for i, item := range pair {
		num, ok := item.(json.Number)
		if !ok {
			return Range{}, false
		}
		n, err := strconv.Atoi(num.String())
		if err != nil {
			return Range{}, false
		}
		r[i] = n
	}
	return r, true
}

func validKey(key string) bool {
	if key == "" || len(key) > 64 {
		return false
	}
	for i := range len(key) {
		c := key[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}
