package spans

import (
	"context"

	"github.com/spigot-labs/spigot/contexts"
	"go.opentelemetry.io/otel/trace"
)

// contextKey is a private type so stored values cannot collide with keys
// from other packages.
type contextKey string

const tracerKey contextKey = "tracer"

// WithTracer stores an OpenTelemetry tracer in the context for the
// orchestrators to pick up. Without one, wrapped functions run unspanned.
//
//	ctx = spans.WithTracer(ctx, otel.Tracer("spigot"))
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return contexts.WithValue[contextKey, trace.Tracer](ctx, tracerKey, tracer)
}

// TracerFromContext retrieves the tracer stored by WithTracer, reporting
// whether one was present.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) {
	return contexts.GetValue[contextKey, trace.Tracer](ctx, tracerKey)
}
