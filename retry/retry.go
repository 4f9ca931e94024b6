// Package retry runs operations that may fail transiently, with bounded
// attempts, exponential backoff, and jitter. Permanent failures are marked
// with Abort and stop the loop immediately.
//
// Basic usage:
//
//	value, err := retry.DoValue(ctx, func(ctx context.Context) (string, error) {
//	    return fetchData(ctx)
//	}, retry.WithAttempts(5))
package retry

import (
	"context"
	"errors"
	"time"
)

const (
	defaultAttempts      = 4
	defaultBaseDelay     = 100 * time.Millisecond
	defaultMaxDelay      = 2 * time.Second
	defaultBackoffFactor = 2.0
)

// Attempts is the maximum number of attempts for an operation, counting the
// initial call. Zero means retry without bound; pair that with a context
// deadline.
type Attempts uint

type options struct {
	attempts Attempts
	backoff  Backoff
	jitter   Jitter
}

// Option adjusts the retry configuration.
type Option func(*options)

// WithAttempts caps the total number of attempts (initial call included).
func WithAttempts(attempts Attempts) Option {
	return func(o *options) {
		o.attempts = attempts
	}
}

// WithBackoff replaces the delay strategy between attempts.
func WithBackoff(backoff Backoff) Option {
	return func(o *options) {
		o.backoff = backoff
	}
}

// WithJitter replaces the jitter strategy applied to each delay.
func WithJitter(jitter Jitter) Option {
	return func(o *options) {
		o.jitter = jitter
	}
}

func newOptions(opts ...Option) options {
	cfg := options{
		attempts: Attempts(defaultAttempts),
		backoff: ExpBackoff{
			Base:   defaultBaseDelay,
			Max:    defaultMaxDelay,
			Factor: defaultBackoffFactor,
		},
		jitter: FullJitter,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Do runs f until it succeeds, returns a permanent error, the attempts are
// exhausted, or the context ends. The current attempt number (zero-based) is
// available to f via Attempt.
func Do(ctx context.Context, f func(ctx context.Context) error, opts ...Option) error {
	cfg := newOptions(opts...)

	var err error

	for attempt := uint(0); Attempts(attempt) < cfg.attempts || cfg.attempts == 0; attempt++ {
		if attempt > 0 {
			if waitErr := sleep(ctx, cfg.jitter.apply(cfg.backoff.Delay(attempt-1))); waitErr != nil {
				return waitErr
			}
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = f(withAttempt(ctx, attempt))
		if err == nil {
			return nil
		}

		var classified Error
		if errors.As(err, &classified) && !classified.Temporary() {
			// Return what Abort wrapped, not the marker itself.
			var perm *permanentError
			if errors.As(err, &perm) {
				return perm.error
			}

			return err
		}
	}

	return err
}

// DoValue is Do for operations that produce a value. On failure the zero
// value of T is returned alongside the last error.
func DoValue[T any](ctx context.Context, f func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	var out T

	err := Do(ctx, func(ctx context.Context) error {
		var innerErr error

		out, innerErr = f(ctx)

		return innerErr
	}, opts...)
	if err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// sleep waits for the delay or the context, whichever ends first.
func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ctxKey is the type for context keys used internally to avoid collisions.
type ctxKey string

const attemptKey ctxKey = "attempt"

func withAttempt(ctx context.Context, attempt uint) context.Context {
	return context.WithValue(ctx, attemptKey, attempt)
}

// Attempt returns the zero-based attempt number stored in the context by the
// retry loop, or 0 outside of one.
func Attempt(ctx context.Context) uint {
	attempt, ok := ctx.Value(attemptKey).(uint)
	if !ok {
		return 0
	}

	return attempt
}
