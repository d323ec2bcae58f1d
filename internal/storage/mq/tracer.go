package mq

import (
	"github.com/twmb/franz-go/plugin/kotel"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("internal/storage/mq")

	// kTracer hooks franz-go so produced records carry the span context in their headers
	// and consumers can continue the trace.
	kTracer = kotel.NewTracer()
)
