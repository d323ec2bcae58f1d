package outbox

import (
	"context"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
)

// BuildHeaders captures the trace context and correlation id of ctx so they survive
// the trip through the outbox table.
func BuildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}

	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}

// ContextFromHeaders restores what BuildHeaders captured.
func ContextFromHeaders(ctx context.Context, headers map[string]string) context.Context {
	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := headers[correlationid.Header]; ok && correlationID != "" {
		ctx = correlationid.NewContext(ctx, correlationID)
	}

	return ctx
}

// CorrelationContextFromRecord copies the correlation id header of rec into ctx.
// Trace context is left to the kotel hooks.
func CorrelationContextFromRecord(ctx context.Context, rec *kgo.Record) context.Context {
	for _, h := range rec.Headers {
		if h.Key == correlationid.Header && len(h.Value) > 0 {
			return correlationid.NewContext(ctx, string(h.Value))
		}
	}
	return ctx
}

// RecordHeaders flattens Kafka record headers. Later duplicates win.
func RecordHeaders(rec *kgo.Record) map[string]string {
	headers := make(map[string]string, len(rec.Headers))
	for _, h := range rec.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}

// KafkaHeaders is the inverse of RecordHeaders.
func KafkaHeaders(headers map[string]string) []kgo.RecordHeader {
	out := make([]kgo.RecordHeader, 0, len(headers))
	for k, v := range headers {
		out = append(out, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return out
}
