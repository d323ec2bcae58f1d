package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/log"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

func TestNew(t *testing.T) {
	t.Run("Should add correlation id to JSON records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo})

		ctx := correlationid.NewContext(context.Background(), "abc-123")
		logger.InfoContext(ctx, "hello", slog.String("service", "test"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "abc-123", rec["correlation_id"])
		assert.Equal(t, "test", rec["service"])
		assert.NotContains(t, rec, "trace_id")
	})

	t.Run("Should respect level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := log.New(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn, NoColor: true})

		logger.Info("dropped")
		assert.Empty(t, buf.String())

		logger.With(slog.String("k", "v")).Warn("kept")
		assert.Contains(t, buf.String(), "kept")
		assert.Contains(t, buf.String(), "k=v")
	})
}
