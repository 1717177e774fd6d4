package sanitizer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgqe/cardsearch/pkg/sanitizer"
)

func TestTextSanitize(t *testing.T) {
	t.Parallel()

	t.Run("ascii only by default", func(t *testing.T) {
		t.Parallel()
		s := sanitizer.New()

		assert.False(t, s.Transliterates())
		assert.Equal(t, " ther Vial", s.Sanitize(context.Background(), "Æther Vial"))
		assert.Equal(t, "", s.Sanitize(context.Background(), ""))
	})

	t.Run("transliteration is opt-in", func(t *testing.T) {
		t.Parallel()
		s := sanitizer.New(sanitizer.WithTransliteration())

		assert.True(t, s.Transliterates())
		assert.Equal(t, "AEther Vial", s.Sanitize(context.Background(), "Æther Vial"))
		assert.Equal(t, "Jace  the Mind Sculptor", s.Sanitize(context.Background(), "Jace, the Mind Sculptor"))
	})

	t.Run("nil logger is ignored", func(t *testing.T) {
		t.Parallel()
		s := sanitizer.New(sanitizer.WithLogger(nil))
		assert.Equal(t, "Black Lotus ", s.Sanitize(context.Background(), "Black Lotus!"))
	})
}

func TestTextLogsEachCall(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := sanitizer.New(sanitizer.WithLogger(log))

	out := s.Sanitize(context.Background(), "Black Lotus!")
	require.Equal(t, "Black Lotus ", out)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "Sanitized 'Black Lotus!' to 'Black Lotus '", rec["msg"])
	assert.Equal(t, true, rec["changed"])
	assert.InDelta(t, 12, rec["units"], 0)
}

func TestTextSkipsLogBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	s := sanitizer.New(sanitizer.WithLogger(log))

	assert.Equal(t, " script ", s.Sanitize(context.Background(), "<script>"))
	assert.Empty(t, buf.String())
}
