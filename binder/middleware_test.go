package binder_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgqe/cardsearch/binder"
	"github.com/mtgqe/cardsearch/pkg/sanitizer"
)

func simpleBinder(t *testing.T) *binder.Simple {
	t.Helper()
	b, err := binder.NewSimple(testRegistry(t).MustLookup("searchForm"), "query", sanitizer.New())
	require.NoError(t, err)
	return b
}

func advancedBinder(t *testing.T) *binder.Advanced {
	t.Helper()
	b, err := binder.NewAdvanced(testRegistry(t).MustLookup("primaryForm"), sanitizer.New())
	require.NoError(t, err)
	return b
}

func TestMiddlewareSimpleGET(t *testing.T) {
	t.Parallel()

	var got string
	h := binder.Middleware(simpleBinder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.FormValue("query")
	}))

	req := httptest.NewRequest(http.MethodGet, "/results?query="+url.QueryEscape("<script>"), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, " script ", got)
}

func TestMiddlewareSimplePOST(t *testing.T) {
	t.Parallel()

	var body string
	var formValue string
	h := binder.Middleware(simpleBinder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		formValue = r.PostFormValue("query")
		raw, _ := r.GetBody()
		b, _ := io.ReadAll(raw)
		body = string(b)
	}))

	req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader("query=Black+Lotus%21&page=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Black Lotus ", formValue)
	assert.Equal(t, "query=Black+Lotus+&page=1", body)
}

func TestMiddlewarePOSTRewritesQueryAndBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		b         binder.FormBinder
		target    string
		body      string
		wantQuery url.Values
		wantForm  url.Values
	}{
		{
			name:      "simple",
			b:         simpleBinder(t),
			target:    "/results?query=" + url.QueryEscape("<script>"),
			body:      "page=1",
			wantQuery: url.Values{"query": {" script "}},
			wantForm:  url.Values{"query": {" script "}, "page": {"1"}},
		},
		{
			name:      "advanced",
			b:         advancedBinder(t),
			target:    "/advanced_results?name=" + url.QueryEscape("<script>"),
			body:      "text=ok%21",
			wantQuery: url.Values{"name": {" script "}},
			wantForm:  url.Values{"name": {" script "}, "text": {"ok "}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var query, form url.Values
			h := binder.Middleware(tt.b)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				query = r.URL.Query()
				require.NoError(t, r.ParseForm())
				form = r.Form
			}))

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantForm, form)
		})
	}
}

func TestMiddlewareAdvancedRewritesEveryInput(t *testing.T) {
	t.Parallel()

	var got url.Values
	h := binder.Middleware(advancedBinder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))

	q := url.Values{
		"name": {"Lim-Dûl's Vault"},
		"text": {"{T}: Add {G}."},
		"type": {"Legendary, Creature"},
	}
	req := httptest.NewRequest(http.MethodGet, "/advanced_results?"+q.Encode(), nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "Lim D l s Vault", got.Get("name"))
	assert.Equal(t, " T   Add  G  ", got.Get("text"))
	assert.Equal(t, "Legendary  Creature", got.Get("type"))
}

func TestMiddlewareAdvancedKeepsOrderAndSelects(t *testing.T) {
	t.Parallel()

	var raw string
	h := binder.Middleware(advancedBinder(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.RawQuery
	}))

	req := httptest.NewRequest(http.MethodGet, "/advanced_results?type=Artifact%21&format=legacy-1&name=Mox%3F", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "type=Artifact+&format=legacy-1&name=Mox+", raw)
}

func TestMiddlewareErrors(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run")
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(`{"query":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		binder.Middleware(simpleBinder(t))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("malformed query", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/results?query=%zz", nil)
		rec := httptest.NewRecorder()
		binder.Middleware(simpleBinder(t))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("body too large", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader("query="+strings.Repeat("a", 64)))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		binder.Middleware(simpleBinder(t), binder.WithMaxBodySize(16))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var captured error
		onError := func(w http.ResponseWriter, r *http.Request, err error) {
			captured = err
			w.WriteHeader(http.StatusTeapot)
		}
		req := httptest.NewRequest(http.MethodGet, "/results?query=%zz", nil)
		rec := httptest.NewRecorder()
		binder.Middleware(simpleBinder(t), binder.WithErrorHandler(onError))(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.True(t, errors.Is(captured, binder.ErrInvalidForm))
	})
}

func TestMiddlewareLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	h := binder.Middleware(advancedBinder(t), binder.WithLogger(log))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/advanced_results?name=a&text=b", nil))

	out := buf.String()
	assert.Contains(t, out, `msg="form sanitized"`)
	assert.Contains(t, out, "form_id=primaryForm")
	assert.Contains(t, out, "binder=advanced")
	assert.Contains(t, out, "fields=2")
}

func TestMiddlewarePanicsOnNilBinder(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { binder.Middleware(nil) })
	assert.Panics(t, func() { binder.WithMaxBodySize(0) })
}

func TestApply(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/results?query=kept%21", nil)
	n, err := binder.Apply(req, simpleBinder(t))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "POST without a body content type falls back to the query string")
	assert.Equal(t, "kept ", req.URL.Query().Get("query"))
}
