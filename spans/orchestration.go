package spans

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// ErrorOrchestrator runs a function that returns an error. Create one via
// spans.StartErr.
type ErrorOrchestrator struct {
	ctx  context.Context //nolint:containedctx
	name string
	opts []Option
}

// Enter executes f within a span and returns f's error. Errors are recorded
// on the span and reflected in its status. Panics are recorded and
// re-raised, so telemetry captures the crash before it propagates.
//
// A nil f is a no-op.
func (o *ErrorOrchestrator) Enter(f func(ctx context.Context, span trace.Span) error) error {
	if f == nil {
		return nil
	}

	_, err := invoke[struct{}](o.ctx, o.name, func(ctx context.Context, span trace.Span) (struct{}, error) {
		return struct{}{}, f(ctx, span)
	}, o.opts...)

	return err
}

// ValueErrorOrchestrator runs a function that returns a value and an error.
// Create one via spans.StartValErr.
type ValueErrorOrchestrator[T any] struct {
	ctx  context.Context //nolint:containedctx
	name string
	opts []Option
}

// Enter executes f within a span, returning its value and error. Errors are
// recorded on the span and reflected in its status; panics are recorded and
// re-raised.
//
// A nil f returns the zero value and no error.
func (o *ValueErrorOrchestrator[T]) Enter(f func(ctx context.Context, span trace.Span) (T, error)) (T, error) {
	if f == nil {
		var zero T

		return zero, nil
	}

	return invoke[T](o.ctx, o.name, f, o.opts...)
}
