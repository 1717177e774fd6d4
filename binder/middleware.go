package binder

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mtgqe/cardsearch/pkg/logger"
)

// DefaultMaxBodySize bounds the url-encoded body the middleware will buffer.
const DefaultMaxBodySize int64 = 1 << 20

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	log     *slog.Logger
	maxBody int64
	onError func(w http.ResponseWriter, r *http.Request, err error)
}

// WithLogger sets the logger for per-submission debug lines and rejected
// submissions. Nil is ignored.
func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) MiddlewareOption {
	if n <= 0 {
		panic("WithMaxBodySize: size must be > 0")
	}
	return func(c *middlewareConfig) { c.maxBody = n }
}

// WithErrorHandler replaces the plain-text error response sent for
// submissions that cannot be parsed.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onError = h
		}
	}
}

// Middleware runs b over every submission before next sees it. The query
// string is always rewritten; for methods other than GET and HEAD a
// url-encoded body is rewritten too. The rewritten payload replaces the
// original on the request, so r.FormValue, r.URL.Query and body readers all
// observe the sanitized values.
//
// Middleware panics when b is nil so a missing binder stops route
// registration instead of surfacing on the first submission.
func Middleware(b FormBinder, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if b == nil {
		panic("binder.Middleware: nil form binder")
	}

	cfg := &middlewareConfig{
		log:     slog.New(slog.DiscardHandler),
		maxBody: DefaultMaxBodySize,
		onError: defaultErrorResponse,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	formID := b.Form().ID
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n, err := apply(r, b, cfg.maxBody)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "form submission rejected",
					logger.FormID(formID),
					logger.Binder(b.Kind()),
					logger.Error(err),
				)
				cfg.onError(w, r, err)
				return
			}

			cfg.log.DebugContext(r.Context(), "form sanitized",
				logger.FormID(formID),
				logger.Binder(b.Kind()),
				logger.Fields(n),
			)
			next.ServeHTTP(w, r)
		})
	}
}

// Apply runs b over the submission carried by r and rewrites r in place.
// It returns the number of sanitized values.
func Apply(r *http.Request, b FormBinder) (int, error) {
	return apply(r, b, DefaultMaxBodySize)
}

func apply(r *http.Request, b FormBinder, maxBody int64) (int, error) {
	n, err := applyQuery(r, b)
	if err != nil {
		return 0, err
	}
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return n, nil
	}

	hasBody, err := isFormBody(r)
	if err != nil {
		return 0, err
	}
	if !hasBody {
		return n, nil
	}
	m, err := applyBody(r, b, maxBody)
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

// applyQuery sanitizes the query string. It runs for every method because
// r.Form and query binders merge it with a POST body.
func applyQuery(r *http.Request, b FormBinder) (int, error) {
	if r.URL.RawQuery == "" {
		return 0, nil
	}
	fields, err := ParseFields(r.URL.RawQuery)
	if err != nil {
		return 0, err
	}
	n := b.Bind(r.Context(), fields)
	r.URL.RawQuery = fields.Encode()
	r.Form = nil
	return n, nil
}

func applyBody(r *http.Request, b FormBinder, maxBody int64) (int, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return 0, nil
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	_ = r.Body.Close()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	if int64(len(raw)) > maxBody {
		return 0, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBody)
	}

	fields, err := ParseFields(string(raw))
	if err != nil {
		return 0, err
	}
	n := b.Bind(r.Context(), fields)

	encoded := fields.Encode()
	r.Body = io.NopCloser(strings.NewReader(encoded))
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}
	r.ContentLength = int64(len(encoded))
	r.Form = nil
	r.PostForm = nil
	return n, nil
}

func defaultErrorResponse(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, ErrBodyTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedMediaType):
		status = http.StatusUnsupportedMediaType
	}
	http.Error(w, http.StatusText(status), status)
}
