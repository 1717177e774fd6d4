package handler_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/mtgqe/cardsearch/binder"
	"github.com/mtgqe/cardsearch/handler"
	"github.com/mtgqe/cardsearch/pkg/requestid"
	"github.com/mtgqe/cardsearch/pkg/validator"
)

func mockErrorPage(params handler.ErrorPageParams) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "Error %d: %s [%s]", params.StatusCode, params.Error, params.RequestID)
		return err
	})
}

func TestNewErrorHandlerClassifies(t *testing.T) {
	t.Parallel()

	verr := handler.NewValidationError()
	verr.Add("power_to", "must be an integer")

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"generic", errors.New("something went wrong"), http.StatusInternalServerError, "An error occurred processing your request"},
		{"http error", handler.ErrNotFound, http.StatusNotFound, "not_found"},
		{"validation", verr, http.StatusBadRequest, "power_to: must be an integer"},
		{"wrapped validation", fmt.Errorf("advanced: %w", verr), http.StatusBadRequest, "power_to"},
		{"invalid query", fmt.Errorf("%w: page", binder.ErrInvalidQuery), http.StatusBadRequest, "invalid query parameter"},
		{"invalid form", binder.ErrInvalidForm, http.StatusBadRequest, "invalid form data"},
		{"media type", binder.ErrUnsupportedMediaType, http.StatusUnsupportedMediaType, "unsupported_media_type"},
		{"too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "request_entity_too_large"},
		{"validator rules", validator.Apply(validator.MinNum("page", 0, 1)), http.StatusBadRequest, "page: must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			eh := handler.NewErrorHandler(slog.New(slog.DiscardHandler), handler.ErrorHandlerConfig{
				ErrorPage: mockErrorPage,
			})
			w := httptest.NewRecorder()
			eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/advanced_results", nil)), tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestNewErrorHandlerRequestIDAndLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	eh := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{ErrorPage: mockErrorPage})

	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	req = req.WithContext(requestid.WithContext(req.Context(), "req-42"))
	w := httptest.NewRecorder()
	eh(handler.NewContext(w, req), handler.ErrBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "[req-42]")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "request_id=req-42")
	assert.Contains(t, buf.String(), "path=/results")
}

func TestNewErrorHandlerFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("no page", func(t *testing.T) {
		t.Parallel()
		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "not_found")
	})

	t.Run("page fails", func(t *testing.T) {
		t.Parallel()
		broken := func(handler.ErrorPageParams) templ.Component {
			return templ.ComponentFunc(func(context.Context, io.Writer) error { return errors.New("broken") })
		}
		eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: broken})
		w := httptest.NewRecorder()
		eh(handler.NewContext(w, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrMethodNotAllowed)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Contains(t, w.Body.String(), "method_not_allowed")
	})
}
