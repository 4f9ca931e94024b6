package spans

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"

	"github.com/spigot-labs/spigot/assert"
	"github.com/spigot-labs/spigot/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Option configures the runner behind an orchestrator.
type Option func(*runner)

// runner executes one function inside one span. It owns span creation,
// status reporting, error recording, and panic recovery.
type runner struct {
	spanName string
	// success and failure override the default status descriptions.
	success string
	failure string
	// spanKind defaults to SpanKindInternal; these spans wrap in-process
	// work, not request handling.
	spanKind trace.SpanKind
	tracer   trace.Tracer

	// sso are span start options passed to tracer.Start.
	sso []trace.SpanStartOption
}

func newRunner(tracer trace.Tracer, spanName string, opts ...Option) *runner {
	r := &runner{
		spanName: spanName,
		spanKind: trace.SpanKindInternal,
		tracer:   tracer,
	}

	for _, option := range opts {
		if option != nil {
			option(r)
		}
	}

	return r
}

// runWithSpan executes operation inside a new span. Errors are recorded and
// reflected in the span status. A panic is tagged with a panic attribute,
// recorded the same way, and re-raised after the span ends.
func (r *runner) runWithSpan(
	ctx context.Context,
	operation func(ctx context.Context, span trace.Span) (any, error),
) (valOut any, errOut error) {
	if r == nil || r.tracer == nil {
		return operation(ctx, trace.SpanFromContext(ctx))
	}

	opts := make([]trace.SpanStartOption, len(r.sso)+1)
	copy(opts, r.sso)
	opts[len(r.sso)] = trace.WithSpanKind(r.spanKind)

	ctx, span := r.tracer.Start(ctx, r.spanName, opts...) //nolint:spancheck

	defer func() {
		defer span.End()

		if recovered := recover(); recovered != nil {
			span.SetAttributes(attribute.Int("panic", 1))

			err := errors.FromPanic(recovered, debug.Stack())

			if errOut == nil {
				errOut = err
			} else {
				errOut = stderrors.Join(errOut, err)
			}

			span.RecordError(errOut)
			r.setErrorStatus(span, errOut)

			panic(recovered)
		}
	}()

	val, err := operation(ctx, span)
	if err != nil {
		span.RecordError(err)
		r.setErrorStatus(span, err)
	} else {
		r.setSuccessStatus(span)
	}

	return val, err
}

func (r *runner) setErrorStatus(span trace.Span, err error) {
	if len(r.failure) > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", r.failure, err.Error()))
	} else {
		span.SetStatus(codes.Error, err.Error())
	}
}

func (r *runner) setSuccessStatus(span trace.Span) {
	if len(r.success) > 0 {
		span.SetStatus(codes.Ok, r.success)
	} else {
		span.SetStatus(codes.Ok, "ok")
	}
}

// invoke executes call within a span when the context carries a tracer.
// Without one the call still runs, against whatever span is already in the
// context, and the instrumentation-gap counter is incremented.
func invoke[T any](
	ctx context.Context, name string,
	call func(ctx context.Context, span trace.Span) (T, error), opts ...Option,
) (T, error) {
	tracer, found := TracerFromContext(ctx)
	if !found {
		spanWithoutTracerCounter.WithLabelValues(name).Inc()

		return call(ctx, trace.SpanFromContext(ctx))
	}

	r := newRunner(tracer, name, opts...)

	var zero T

	ret, err := r.runWithSpan(ctx, func(ctx context.Context, span trace.Span) (any, error) {
		return call(ctx, span)
	})
	if err != nil {
		return zero, err
	}

	// ret is nil only when T is an interface type holding nil; the zero
	// value of T is that nil.
	if ret == nil {
		return zero, nil
	}

	return assert.Type[T](ret)
}
