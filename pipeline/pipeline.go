// Package pipeline executes pipes with the house instrumentation attached:
// an OpenTelemetry span per transform, Prometheus counters and latency
// histograms, and structured failure logs with redacted argument values.
//
// The synchronous path is a direct call. Async runs the same instrumented
// transform on a goroutine and hands back a future, for callers that want
// the deferred form.
//
//	out, err := pipeline.Run(ctx, pipe.NewInt(), raw, meta)
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/spigot-labs/spigot/future"
	"github.com/spigot-labs/spigot/logger"
	"github.com/spigot-labs/spigot/pipe"
	"github.com/spigot-labs/spigot/redact"
	"github.com/spigot-labs/spigot/spans"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// absentValue stands in for an untyped nil argument in log records.
const absentValue = "<absent>"

// Runner executes pipes with instrumentation attached. Construct with New;
// Runners are safe for concurrent use.
type Runner struct {
	policy redact.Func
}

// Option configures a Runner.
type Option func(*Runner)

// WithRedaction replaces the redaction policy applied to argument values in
// failure logs. A nil policy logs values verbatim.
func WithRedaction(policy redact.Func) Option {
	return func(r *Runner) {
		r.policy = policy
	}
}

// New builds a Runner. Without options, failure logs redact argument values
// with redact.DefaultPolicy.
func New(opts ...Option) *Runner {
	r := &Runner{
		policy: redact.DefaultPolicy,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

var defaultRunner = New() //nolint:gochecknoglobals

// Run executes p with the default runner.
func Run(ctx context.Context, p pipe.Pipe, value any, meta pipe.Metadata) (any, error) {
	return defaultRunner.Run(ctx, p, value, meta)
}

// Async executes p with the default runner on a new goroutine.
func Async(ctx context.Context, p pipe.Pipe, value any, meta pipe.Metadata) *future.Future[any] {
	return defaultRunner.Async(ctx, p, value, meta)
}

// Run executes one transform inside a span, records metrics, and logs
// failures with the argument value redacted. The pipe's result and error
// come back unchanged. A nil pipe is the identity transform.
func (r *Runner) Run(ctx context.Context, p pipe.Pipe, value any, meta pipe.Metadata) (any, error) {
	if p == nil {
		return value, nil
	}

	return spans.StartValErr[any](ctx, "pipe."+p.Name(),
		spans.WithAttribute("argument", attribute.StringValue(meta.String())),
	).Enter(func(ctx context.Context, _ trace.Span) (any, error) {
		return r.transform(ctx, p, value, meta)
	})
}

// Async runs the same instrumented transform on a new goroutine. A panic
// inside the pipe fails the future instead of crashing the process.
func (r *Runner) Async(ctx context.Context, p pipe.Pipe, value any, meta pipe.Metadata) *future.Future[any] {
	return future.GoContext(ctx, func(ctx context.Context) (any, error) {
		return r.Run(ctx, p, value, meta)
	})
}

func (r *Runner) transform(ctx context.Context, p pipe.Pipe, value any, meta pipe.Metadata) (any, error) {
	start := time.Now()

	out, err := p.Transform(ctx, value, meta)

	elapsed := time.Since(start).Seconds() * 1000

	outcome := outcomeOk
	if err != nil {
		outcome = outcomeError
	}

	transformsTotal.WithLabelValues(p.Name(), string(meta.Source), outcome).Inc()
	transformTime.WithLabelValues(p.Name(), outcome).Observe(elapsed)

	if err != nil {
		logger.Get(ctx).Warn("Pipe transform failed",
			"pipe", p.Name(),
			"argument", meta.String(),
			"value", r.displayValue(ctx, meta, value),
			"error", err)
	}

	return out, err
}

// displayValue renders an argument value for a log record through the
// runner's redaction policy. Absent values carry nothing to redact.
func (r *Runner) displayValue(ctx context.Context, meta pipe.Metadata, value any) string {
	if value == nil {
		return absentValue
	}

	return redact.String(ctx, meta.Name, fmt.Sprintf("%v", value), r.policy)
}
