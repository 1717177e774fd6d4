package sanitizer

import (
	"context"
	"fmt"
	"log/slog"
)

// Text is a query-text sanitizer that logs every transformation.
// The zero value is not usable; create one with New.
type Text struct {
	log           *slog.Logger
	transliterate bool
	pipeline      func(string) string
}

// Option configures a Text sanitizer.
type Option func(*Text)

// WithLogger sets the logger that receives the per-call debug line.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(t *Text) {
		if l != nil {
			t.log = l
		}
	}
}

// WithTransliteration folds non-ASCII letters to ASCII before filtering.
// Output stays query-safe but may be longer than the input.
func WithTransliteration() Option {
	return func(t *Text) { t.transliterate = true }
}

// New creates a Text sanitizer. Without options it discards its log output
// and applies QueryText only.
func New(opts ...Option) *Text {
	t := &Text{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(t)
	}

	if t.transliterate {
		t.pipeline = Compose(Transliterate, QueryText)
	} else {
		t.pipeline = QueryText
	}
	return t
}

// Sanitize returns the query-safe form of s and logs the transformation.
func (t *Text) Sanitize(ctx context.Context, s string) string {
	out := t.pipeline(s)
	t.log.DebugContext(ctx, fmt.Sprintf("Sanitized '%s' to '%s'", s, out),
		slog.Int("units", CodeUnits(s)),
		slog.Bool("changed", out != s),
	)
	return out
}

// Transliterates reports whether the sanitizer folds non-ASCII letters.
func (t *Text) Transliterates() bool {
	return t.transliterate
}
