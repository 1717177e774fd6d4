// Package site serves the card search pages and receives their submissions.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mtgqe/cardsearch/binder"
	"github.com/mtgqe/cardsearch/handler"
	"github.com/mtgqe/cardsearch/internal/advquery"
	"github.com/mtgqe/cardsearch/pkg/forms"
	"github.com/mtgqe/cardsearch/pkg/httpserver"
	"github.com/mtgqe/cardsearch/pkg/logger"
	"github.com/mtgqe/cardsearch/pkg/requestid"
	"github.com/mtgqe/cardsearch/pkg/validator"
)

const (
	SearchFormID   = "searchForm"
	SearchField    = "query"
	AdvancedFormID = "primaryForm"

	// MaxResults caps the page size of a simple search.
	MaxResults = 100

	resultsPath         = "/results"
	advancedResultsPath = "/advanced_results"
)

// Site wires the form binders to the pages and result endpoints.
type Site struct {
	forms        *forms.Registry
	sanitizer    binder.Sanitizer
	simple       *binder.Simple
	advanced     *binder.Advanced
	views        Views
	log          *slog.Logger
	maxBody      int64
	errorHandler handler.ErrorHandler
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger used for requests, binders and errors. Nil is
// ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Site) {
		if l != nil {
			s.log = l
		}
	}
}

// WithViews overrides page components. Nil members keep the defaults.
func WithViews(v Views) Option {
	return func(s *Site) {
		s.views = v
	}
}

// WithMaxFormBytes limits POST submissions. Non-positive values keep the
// binder default.
func WithMaxFormBytes(n int64) Option {
	return func(s *Site) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// New binds s to the search and advanced forms of reg. It fails when either
// form or the search field is missing.
func New(reg *forms.Registry, s binder.Sanitizer, opts ...Option) (*Site, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	search, err := reg.Lookup(SearchFormID)
	if err != nil {
		return nil, err
	}
	advanced, err := reg.Lookup(AdvancedFormID)
	if err != nil {
		return nil, err
	}

	site := &Site{
		forms:     reg,
		sanitizer: s,
		log:     slog.New(slog.DiscardHandler),
		maxBody: binder.DefaultMaxBodySize,
	}
	if site.simple, err = binder.NewSimple(search, SearchField, s); err != nil {
		return nil, fmt.Errorf("search form: %w", err)
	}
	if site.advanced, err = binder.NewAdvanced(advanced, s); err != nil {
		return nil, fmt.Errorf("advanced form: %w", err)
	}

	for _, opt := range opts {
		opt(site)
	}
	site.views = site.views.withDefaults()
	site.errorHandler = handler.NewErrorHandler(site.log, handler.ErrorHandlerConfig{
		ErrorPage: site.views.ErrorPage,
	})
	return site, nil
}

// Router returns the site's routes.
func (s *Site) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/", handler.Wrap(s.index))
	r.Get("/advanced", handler.Wrap(s.advancedPage))

	r.Group(func(r chi.Router) {
		r.Use(s.sanitize(s.simple))
		r.Get(resultsPath, s.wrapResults())
		r.Post(resultsPath, s.wrapResults())
	})

	r.Group(func(r chi.Router) {
		// Pagination links carry a JSON parameter set that the form binder
		// would destroy; advquery.ParseEncoded sanitizes it instead.
		r.Use(unlessDecoded(s.sanitize(s.advanced)))
		r.Get(advancedResultsPath, handler.Wrap(s.advancedResults,
			handler.WithErrorHandler[struct{}](s.errorHandler)))
		r.Post(advancedResultsPath, handler.Wrap(s.advancedResults,
			handler.WithErrorHandler[struct{}](s.errorHandler)))
	})

	r.Get("/health/live", httpserver.HealthCheckHandler(s.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(s.log, s.ready))

	r.NotFound(handler.Wrap(s.notFound))
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), handler.ErrMethodNotAllowed)
	})
	return r
}

func (s *Site) sanitize(b binder.FormBinder) func(http.Handler) http.Handler {
	return binder.Middleware(b,
		binder.WithLogger(s.log),
		binder.WithMaxBodySize(s.maxBody),
		binder.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			s.errorHandler(handler.NewContext(w, r), err)
		}),
	)
}

func unlessDecoded(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		sanitized := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if advquery.Decoded(r.URL.Query()) {
				next.ServeHTTP(w, r)
				return
			}
			sanitized.ServeHTTP(w, r)
		})
	}
}

func (s *Site) ready(context.Context) error {
	if s.forms.Len() == 0 {
		return forms.ErrFormNotFound
	}
	return nil
}

func (s *Site) index(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Index(s.simple.Form()))
}

func (s *Site) advancedPage(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Advanced(s.advanced.Form()))
}

func (s *Site) notFound(ctx handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.NotFound(), handler.WithStatus(http.StatusNotFound))
}

// ResultsRequest is a simple search submission.
type ResultsRequest struct {
	Query   string `query:"query" form:"query" json:"query"`
	Page    int    `query:"page" form:"page" json:"page"`
	Results int    `query:"results" form:"results" json:"results"`
}

func (s *Site) wrapResults() http.HandlerFunc {
	return handler.Wrap(s.results,
		handler.WithBinders[ResultsRequest](binder.Query(), binder.Form()),
		handler.WithErrorHandler[ResultsRequest](s.errorHandler),
	)
}

func (s *Site) results(ctx handler.Context, req ResultsRequest) handler.Response {
	if strings.TrimSpace(req.Query) == "" {
		return handler.Redirect("/")
	}

	if req.Page == 0 {
		req.Page = advquery.DefaultPage
	}
	if req.Results == 0 {
		req.Results = advquery.DefaultResults
	}
	if err := validator.Apply(
		validator.MinNum("page", req.Page, 1),
		validator.MinNum("results", req.Results, 1),
		validator.MaxNum("results", req.Results, MaxResults),
	); err != nil {
		return handler.JSONError(err)
	}

	s.log.InfoContext(ctx, "search",
		logger.FormID(SearchFormID),
		slog.String("query", req.Query),
		slog.Int("page", req.Page),
	)
	return handler.JSON(req)
}

func (s *Site) advancedResults(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()

	var (
		q   advquery.Query
		err error
	)
	if query := r.URL.Query(); advquery.Decoded(query) {
		q, err = advquery.ParseEncoded(ctx, query, s.sanitizer)
	} else {
		if err := r.ParseForm(); err != nil {
			return handler.JSONError(handler.ErrBadRequest)
		}
		q, err = advquery.Parse(r.Form)
	}
	if err != nil {
		return handler.JSONError(err)
	}
	if err := s.validatePageSize(q.Results); err != nil {
		return handler.JSONError(err)
	}
	if len(q.Params) == 0 {
		return handler.Redirect("/advanced")
	}

	s.log.InfoContext(ctx, "advanced search",
		logger.FormID(AdvancedFormID),
		slog.Int("params", len(q.Params)),
		slog.Int("page", q.Page),
	)

	meta := map[string]any{"next": q.PageURL(advancedResultsPath, q.Page+1)}
	if q.Page > 1 {
		meta["prev"] = q.PageURL(advancedResultsPath, q.Page-1)
	}
	return handler.JSON(map[string]any{
		"params":  q.Params,
		"page":    q.Page,
		"results": q.Results,
	}, handler.WithJSONMeta(meta))
}

// validatePageSize restricts results to the choices the advanced form
// declares, when it declares any.
func (s *Site) validatePageSize(results int) error {
	form := s.advanced.Form()
	if !form.HasField("results") {
		return nil
	}

	f, _ := form.Field("results")
	choices := make([]int, 0, len(f.Options))
	for _, o := range f.Options {
		if n, err := strconv.Atoi(o.Value); err == nil {
			choices = append(choices, n)
		}
	}
	return validator.Apply(validator.When(
		len(choices) > 0,
		validator.InList("results", results, choices),
	))
}
