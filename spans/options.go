package spans

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WithAttribute adds an attribute to the span when it is created. Call it
// multiple times to add several, or use WithSpanStartOptions with
// trace.WithAttributes for a batch.
//
//	spans.StartValErr[int64](ctx, "parse-argument",
//		spans.WithAttribute("argument", attribute.StringValue(meta.Name)),
//	)
func WithAttribute(key attribute.Key, value attribute.Value) Option {
	return func(r *runner) {
		r.sso = append(r.sso, trace.WithAttributes(attribute.KeyValue{
			Key:   key,
			Value: value,
		}))
	}
}

// WithSpanKind sets the OpenTelemetry span kind. The default is
// SpanKindInternal.
func WithSpanKind(kind trace.SpanKind) Option {
	return func(r *runner) {
		r.spanKind = kind
	}
}

// WithSuccessMessage sets the status description used when the wrapped
// function completes without error. Defaults to "ok".
func WithSuccessMessage(description string) Option {
	return func(r *runner) {
		r.success = description
	}
}

// WithErrorMessage sets a prefix for the status description used when the
// wrapped function returns an error. The span status becomes
// "{description}: {error}".
func WithErrorMessage(description string) Option {
	return func(r *runner) {
		r.failure = description
	}
}

// WithSpanStartOptions passes raw OpenTelemetry span start options through
// to tracer.Start, for configuration the other options do not cover (links,
// timestamps, attribute batches).
func WithSpanStartOptions(options ...trace.SpanStartOption) Option {
	return func(r *runner) {
		r.sso = append(r.sso, options...)
	}
}
