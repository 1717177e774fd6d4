package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtgqe/cardsearch/pkg/logger"
)

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)

	assert.Equal(t, slog.Attr{}, logger.Errors(nil, nil))
	grouped := logger.Errors(nil, errors.New("a"), errors.New("b"))
	assert.Equal(t, "errors", grouped.Key)
	assert.Len(t, grouped.Value.Group(), 2)
	assert.Equal(t, "1", grouped.Value.Group()[0].Key)
}

func TestDomainAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.String("form_id", "searchForm"), logger.FormID("searchForm"))
	assert.Equal(t, slog.String("field", "query"), logger.Field("query"))
	assert.Equal(t, slog.Int("fields", 3), logger.Fields(3))
	assert.Equal(t, slog.String("binder", "advanced"), logger.Binder("advanced"))
	assert.Equal(t, slog.String("request_id", "abc"), logger.RequestID("abc"))
	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
}
