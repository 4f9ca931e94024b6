// Package envcfg reads typed configuration from environment variables.
//
// Every getter returns a Reader describing the outcome of the lookup rather
// than a bare value, so the caller chooses the failure mode at the use site:
//
//	port := envcfg.Int(ctx, "PORT", envcfg.Default[int64](8080)).ValueOrFatal()
//
// The Bool, Int, Float and UUID getters parse through the pipe package with
// Source set to env, so environment values obey the same rules as request
// arguments. Context overrides (WithOverride) shadow the process environment,
// which keeps tests free of os.Setenv.
package envcfg

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/pipe"
)

// get returns the raw Reader for key. Context overrides win over the
// process environment.
func get(ctx context.Context, key string) Reader[string] {
	if val, ok := getOverride(ctx, key); ok {
		return Reader[string]{key: key, present: true, value: val}
	}

	val, ok := os.LookupEnv(key)

	return Reader[string]{key: key, present: ok, value: val}
}

// through parses a raw environment string with the given pipe. Only the
// parse verdict matters here; the error's HTTP status is ignored.
func through[T any](ctx context.Context, parser pipe.Pipe, key string) func(string) (T, error) {
	return func(raw string) (T, error) {
		var zero T

		out, err := parser.Transform(ctx, raw, pipe.Metadata{Source: pipe.SourceEnv, Name: key})
		if err != nil {
			return zero, err
		}

		val, ok := out.(T)
		if !ok {
			return zero, fmt.Errorf("%w: expected %T, got %T", errors.ErrWrongType, zero, out)
		}

		return val, nil
	}
}

// String returns a Reader for the given environment variable.
func String(ctx context.Context, key string, opts ...Option[string]) Reader[string] {
	rdr := get(ctx, key)
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// Bool returns a Reader for a boolean variable. Accepted spellings are the
// ones the bool pipe accepts: "true", "false", "1" and "0".
func Bool(ctx context.Context, key string, opts ...Option[bool]) Reader[bool] {
	rdr := Map(get(ctx, key), through[bool](ctx, pipe.NewBool(), key))
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// Int returns a Reader for an integer variable, parsed via the int pipe.
func Int(ctx context.Context, key string, opts ...Option[int64]) Reader[int64] {
	rdr := Map(get(ctx, key), through[int64](ctx, pipe.NewInt(), key))
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// Float returns a Reader for a floating-point variable, parsed via the
// float pipe.
func Float(ctx context.Context, key string, opts ...Option[float64]) Reader[float64] {
	rdr := Map(get(ctx, key), through[float64](ctx, pipe.NewFloat(), key))
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// UUID returns a Reader for a UUID variable, parsed via the uuid pipe.
func UUID(ctx context.Context, key string, opts ...Option[uuid.UUID]) Reader[uuid.UUID] {
	rdr := Map(get(ctx, key), through[uuid.UUID](ctx, pipe.NewUUID(), key))
	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// Duration returns a Reader for a variable in time.ParseDuration syntax,
// e.g. "250ms" or "1h30m".
func Duration(ctx context.Context, key string, opts ...Option[time.Duration]) Reader[time.Duration] {
	rdr := Map(get(ctx, key), func(raw string) (time.Duration, error) {
		return time.ParseDuration(strings.TrimSpace(raw))
	})

	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}

// LogLevel returns a Reader for a slog level variable. Names are matched
// case-insensitively and offsets like "warn+2" are accepted.
func LogLevel(ctx context.Context, key string, opts ...Option[slog.Level]) Reader[slog.Level] {
	rdr := Map(get(ctx, key), func(raw string) (slog.Level, error) {
		var level slog.Level
		err := level.UnmarshalText([]byte(strings.TrimSpace(raw)))

		return level, err
	})

	for _, opt := range opts {
		rdr = opt(rdr)
	}

	return rdr
}
