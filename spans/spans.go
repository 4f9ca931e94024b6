// Package spans wraps function calls in OpenTelemetry spans.
//
// A tracer travels in the context (see WithTracer). The orchestrators
// returned by StartErr and StartValErr look it up, open a span around the
// wrapped function, record errors, recover and re-raise panics, and set the
// span status. When the context carries no tracer the function still runs,
// unwrapped, and an instrumentation-gap counter is incremented.
//
//	out, err := spans.StartValErr[int64](ctx, "parse-port").Enter(
//		func(ctx context.Context, span trace.Span) (int64, error) {
//			return parsePort(ctx, raw)
//		})
package spans

import (
	"context"
)

// StartErr begins orchestration of a function that returns an error.
func StartErr(ctx context.Context, name string, opts ...Option) *ErrorOrchestrator {
	return &ErrorOrchestrator{ctx: ctx, name: name, opts: opts}
}

// StartValErr begins orchestration of a function that returns a value of
// type T and an error.
func StartValErr[T any](ctx context.Context, name string, opts ...Option) *ValueErrorOrchestrator[T] {
	return &ValueErrorOrchestrator[T]{ctx: ctx, name: name, opts: opts}
}
