package outbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/outbox"
)

func TestBuildHeaders(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})

	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	ctx = correlationid.NewContext(ctx, "corr-1")

	headers := outbox.BuildHeaders(ctx)

	t.Run("Should inject trace and correlation headers", func(t *testing.T) {
		assert.Equal(t, "corr-1", headers[correlationid.Header])
		assert.Contains(t, headers["traceparent"], traceID.String())
	})

	t.Run("Should restore context from headers", func(t *testing.T) {
		restored := outbox.ContextFromHeaders(context.Background(), headers)

		id, ok := correlationid.FromContext(restored)
		assert.True(t, ok)
		assert.Equal(t, "corr-1", id)
		assert.Equal(t, traceID, trace.SpanContextFromContext(restored).TraceID())
	})
}

func TestRecordHeaders(t *testing.T) {
	headers := map[string]string{"a": "1", correlationid.Header: "corr-2"}
	rec := &kgo.Record{Headers: outbox.KafkaHeaders(headers)}

	assert.Equal(t, headers, outbox.RecordHeaders(rec))

	id, ok := correlationid.FromContext(outbox.CorrelationContextFromRecord(context.Background(), rec))
	assert.True(t, ok)
	assert.Equal(t, "corr-2", id)

	_, ok = correlationid.FromContext(outbox.CorrelationContextFromRecord(context.Background(), &kgo.Record{}))
	assert.False(t, ok)
}
