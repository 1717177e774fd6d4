package binder_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgqe/cardsearch/binder"
	"github.com/mtgqe/cardsearch/pkg/forms"
	"github.com/mtgqe/cardsearch/pkg/sanitizer"
)

const testForms = `
forms:
  - id: searchForm
    action: /results
    fields:
      - name: query
  - id: primaryForm
    action: /advanced_results
    fields:
      - name: name
      - name: text
      - name: type
      - name: format
        element: select
        options:
          - {value: legacy, label: Legacy}
      - name: notes
        element: textarea
`

func testRegistry(t *testing.T) *forms.Registry {
	t.Helper()
	reg, err := forms.Parse(strings.NewReader(testForms))
	require.NoError(t, err)
	return reg
}

// recorder captures every value it is asked to sanitize.
type recorder struct {
	seen []string
}

func (r *recorder) Sanitize(_ context.Context, s string) string {
	r.seen = append(r.seen, s)
	return sanitizer.QueryText(s)
}

func TestNewSimple(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		b, err := binder.NewSimple(reg.MustLookup("searchForm"), "query", sanitizer.New())
		require.NoError(t, err)
		assert.Equal(t, "query", b.Field())
		assert.Equal(t, "simple", b.Kind())
		assert.Equal(t, "searchForm", b.Form().ID)
	})

	t.Run("missing form", func(t *testing.T) {
		t.Parallel()
		_, err := binder.NewSimple(nil, "query", sanitizer.New())
		assert.ErrorIs(t, err, forms.ErrFormNotFound)
	})

	t.Run("missing field", func(t *testing.T) {
		t.Parallel()
		_, err := binder.NewSimple(reg.MustLookup("searchForm"), "searchInput", sanitizer.New())
		assert.ErrorIs(t, err, forms.ErrFieldNotFound)
		assert.Contains(t, err.Error(), "searchInput")
	})

	t.Run("nil sanitizer", func(t *testing.T) {
		t.Parallel()
		_, err := binder.NewSimple(reg.MustLookup("searchForm"), "query", nil)
		assert.ErrorIs(t, err, binder.ErrNilSanitizer)
	})
}

func TestSimpleBind(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	rec := &recorder{}
	b, err := binder.NewSimple(reg.MustLookup("searchForm"), "query", rec)
	require.NoError(t, err)

	fields := binder.Fields{
		{Name: "query", Value: "<script>"},
		{Name: "page", Value: "2!"},
	}
	n := b.Bind(context.Background(), fields)

	assert.Equal(t, 1, n)
	assert.Equal(t, " script ", fields.Get("query"))
	assert.Equal(t, "2!", fields.Get("page"), "other fields are untouched")
	assert.Equal(t, []string{"<script>"}, rec.seen)

	assert.Equal(t, 0, b.Bind(context.Background(), binder.Fields{{Name: "page", Value: "1"}}))
}

func TestNewAdvanced(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	b, err := binder.NewAdvanced(reg.MustLookup("primaryForm"), sanitizer.New())
	require.NoError(t, err)
	assert.Equal(t, "advanced", b.Kind())
	assert.Equal(t, "primaryForm", b.Form().ID)

	_, err = binder.NewAdvanced(nil, sanitizer.New())
	assert.ErrorIs(t, err, forms.ErrFormNotFound)

	_, err = binder.NewAdvanced(reg.MustLookup("primaryForm"), nil)
	assert.ErrorIs(t, err, binder.ErrNilSanitizer)
}

func TestAdvancedBind(t *testing.T) {
	t.Parallel()
	reg := testRegistry(t)

	rec := &recorder{}
	b, err := binder.NewAdvanced(reg.MustLookup("primaryForm"), rec)
	require.NoError(t, err)

	fields := binder.Fields{
		{Name: "name", Value: "Jace, the Mind Sculptor"},
		{Name: "text", Value: "Draw three cards."},
		{Name: "type", Value: "Planeswalker!"},
		{Name: "format", Value: "legacy-ish"},
		{Name: "notes", Value: "keep: this"},
		{Name: "extra", Value: "¿undeclared?"},
	}
	n := b.Bind(context.Background(), fields)

	assert.Equal(t, 4, n)
	assert.Equal(t, binder.Fields{
		{Name: "name", Value: "Jace  the Mind Sculptor"},
		{Name: "text", Value: "Draw three cards "},
		{Name: "type", Value: "Planeswalker "},
		{Name: "format", Value: "legacy-ish"},
		{Name: "notes", Value: "keep: this"},
		{Name: "extra", Value: " undeclared "},
	}, fields)
	assert.Equal(t, []string{
		"Jace, the Mind Sculptor",
		"Draw three cards.",
		"Planeswalker!",
		"¿undeclared?",
	}, rec.seen, "inputs are visited in payload order")
}

func TestSanitizerFunc(t *testing.T) {
	t.Parallel()

	upper := binder.SanitizerFunc(func(_ context.Context, s string) string { return strings.ToUpper(s) })
	assert.Equal(t, "ABC", upper.Sanitize(context.Background(), "abc"))
}
