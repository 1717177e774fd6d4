package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/mtgqe/cardsearch/binder"
	"github.com/mtgqe/cardsearch/pkg/logger"
	"github.com/mtgqe/cardsearch/pkg/requestid"
)

type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the error page. Without it a plain-text body is written.
	ErrorPage func(ErrorPageParams) templ.Component
}

// ErrorInfo is the classification of an error for the response and the log.
type ErrorInfo struct {
	StatusCode int
	Message    string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func formatValidationErrors(validationErr ValidationError) string {
	fields := make([]string, 0, len(validationErr))
	for field := range validationErr {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var messages []string
	for _, field := range fields {
		for _, msg := range validationErr[field] {
			messages = append(messages, fmt.Sprintf("%s: %s", field, msg))
		}
	}
	if len(messages) == 0 {
		return "Validation failed"
	}
	return strings.Join(messages, "; ")
}

func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: ErrInternalServerError.Code,
		Message:    "An error occurred processing your request",
	}

	var httpErr HTTPError
	validationErr, isValidation := asValidationError(err)
	switch {
	case isValidation:
		info.StatusCode = http.StatusBadRequest
		info.Message = formatValidationErrors(validationErr)
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	case errors.Is(err, binder.ErrBodyTooLarge):
		info.StatusCode = ErrRequestEntityTooLarge.Code
		info.Message = ErrRequestEntityTooLarge.Key
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		info.StatusCode = ErrUnsupportedMediaType.Code
		info.Message = ErrUnsupportedMediaType.Key
	case errors.Is(err, binder.ErrInvalidQuery), errors.Is(err, binder.ErrInvalidForm):
		info.StatusCode = http.StatusBadRequest
		info.Message = err.Error()
	}

	info.LogLevel = slog.LevelError
	if isClientError(info.StatusCode) {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.RequestID(requestid.FromContext(r.Context())),
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		logger.Component("error_handler"),
	)
}

// NewErrorHandler returns an ErrorHandler that classifies err, logs it and
// renders cfg.ErrorPage with the resulting status.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(ctx Context, err error) {
		info := classifyError(err)
		logError(log, ctx, err, info)

		w := ctx.ResponseWriter()
		if cfg.ErrorPage == nil {
			http.Error(w, info.Message, info.StatusCode)
			return
		}

		page := cfg.ErrorPage(ErrorPageParams{
			Error:      info.Message,
			StatusCode: info.StatusCode,
			RequestID:  requestid.FromContext(ctx.Request().Context()),
		})
		if renderErr := Templ(page, WithStatus(info.StatusCode)).Render(w, ctx.Request()); renderErr != nil {
			log.ErrorContext(ctx.Request().Context(), "failed to render error page",
				logger.Error(renderErr),
				logger.Event("render_error_page"),
			)
			http.Error(w, info.Message, info.StatusCode)
		}
	}
}
