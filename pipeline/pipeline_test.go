package pipeline_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/httperr"
	"github.com/spigot-labs/spigot/logger"
	"github.com/spigot-labs/spigot/pipe"
	"github.com/spigot-labs/spigot/pipeline"
	"github.com/spigot-labs/spigot/spans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRunTransformsValue(t *testing.T) {
	t.Parallel()

	out, err := pipeline.Run(context.Background(), pipe.NewInt(), "42",
		pipe.Metadata{Source: pipe.SourceParam, Name: "id"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), out)
}

func TestRunReturnsPipeErrorUnchanged(t *testing.T) {
	t.Parallel()

	_, err := pipeline.Run(context.Background(), pipe.NewInt(), "abc",
		pipe.Metadata{Source: pipe.SourceParam, Name: "id"})

	require.Error(t, err)
	assert.True(t, httperr.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, "Validation failed (numeric string is expected)", err.Error())
}

func TestRunNilPipe(t *testing.T) {
	t.Parallel()

	out, err := pipeline.Run(context.Background(), nil, "untouched", pipe.Metadata{})

	require.NoError(t, err)
	assert.Equal(t, "untouched", out, "a nil pipe should be the identity transform")
}

// setupTracedContext builds a context carrying a tracer backed by an
// in-memory exporter, torn down with the test.
func setupTracedContext(t *testing.T) (context.Context, *tracetest.InMemoryExporter) {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(trace.WithSyncer(exporter))

	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	return spans.WithTracer(context.Background(), tp.Tracer("test-tracer")), exporter
}

func TestRunCreatesSpan(t *testing.T) {
	t.Parallel()

	t.Run("success span", func(t *testing.T) {
		t.Parallel()

		ctx, exporter := setupTracedContext(t)

		_, err := pipeline.Run(ctx, pipe.NewInt(), "7",
			pipe.Metadata{Source: pipe.SourceParam, Name: "id"})
		require.NoError(t, err)

		spanData := exporter.GetSpans()
		require.Len(t, spanData, 1, "should have created one span")
		assert.Equal(t, "pipe.int", spanData[0].Name)
		assert.Equal(t, codes.Ok, spanData[0].Status.Code)

		var argument string

		for _, attr := range spanData[0].Attributes {
			if string(attr.Key) == "argument" {
				argument = attr.Value.AsString()
			}
		}

		assert.Equal(t, "param:id[0]", argument)
	})

	t.Run("failure span", func(t *testing.T) {
		t.Parallel()

		ctx, exporter := setupTracedContext(t)

		_, err := pipeline.Run(ctx, pipe.NewBool(), "maybe",
			pipe.Metadata{Source: pipe.SourceQuery, Name: "flag"})
		require.Error(t, err)

		spanData := exporter.GetSpans()
		require.Len(t, spanData, 1, "should have created one span")
		assert.Equal(t, "pipe.bool", spanData[0].Name)
		assert.Equal(t, codes.Error, spanData[0].Status.Code)
		assert.Contains(t, spanData[0].Status.Description, "boolean string is expected")
	})

	t.Run("absent optional value stays absent", func(t *testing.T) {
		t.Parallel()

		ctx, _ := setupTracedContext(t)

		out, err := pipeline.Run(ctx, pipe.NewInt(pipe.Optional()), nil,
			pipe.Metadata{Source: pipe.SourceQuery, Name: "limit"})

		require.NoError(t, err)
		assert.Nil(t, out)
	})
}

//nolint:paralleltest // Reconfigures the process-wide logger.
func TestRunRedactsFailureLogs(t *testing.T) {
	var buf bytes.Buffer

	logger.ConfigureWithOptions(logger.Options{
		Component: "pipeline-test",
		Output:    &buf,
	})

	t.Run("long values are redacted", func(t *testing.T) {
		buf.Reset()

		_, err := pipeline.Run(context.Background(), pipe.NewBool(), "supersecrettoken",
			pipe.Metadata{Source: pipe.SourceQuery, Name: "token"})
		require.Error(t, err)

		logged := buf.String()
		assert.Contains(t, logged, "Pipe transform failed")
		assert.Contains(t, logged, "supe[redacted]", "long values keep a short prefix")
		assert.NotContains(t, logged, "supersecrettoken", "raw value must not reach the log")
		assert.Contains(t, logged, "boolean string is expected")
	})

	t.Run("absent values log a placeholder", func(t *testing.T) {
		buf.Reset()

		_, err := pipeline.Run(context.Background(), pipe.NewInt(), nil,
			pipe.Metadata{Source: pipe.SourceParam, Name: "id"})
		require.Error(t, err)

		assert.Contains(t, buf.String(), "absent")
	})

	t.Run("success is not logged", func(t *testing.T) {
		buf.Reset()

		_, err := pipeline.Run(context.Background(), pipe.NewInt(), "42",
			pipe.Metadata{Source: pipe.SourceParam, Name: "id"})
		require.NoError(t, err)

		assert.Empty(t, buf.String())
	})
}

//nolint:paralleltest // Reconfigures the process-wide logger.
func TestRunCustomRedactionPolicy(t *testing.T) {
	var buf bytes.Buffer

	logger.ConfigureWithOptions(logger.Options{
		Component: "pipeline-test",
		Output:    &buf,
	})

	runner := pipeline.New(pipeline.WithRedaction(nil))

	_, err := runner.Run(context.Background(), pipe.NewBool(), "supersecrettoken",
		pipe.Metadata{Source: pipe.SourceQuery, Name: "token"})
	require.Error(t, err)

	assert.Contains(t, buf.String(), "supersecrettoken",
		"a nil policy logs the value verbatim")
}

//nolint:paralleltest // Replaces the default logger with the test logger.
func TestRunLogsToTestWriter(t *testing.T) {
	prev := slog.Default()
	slog.SetDefault(slogt.New(t))
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := pipeline.Run(context.Background(), pipe.NewUUID(), "not-a-uuid",
		pipe.Metadata{Source: pipe.SourceHeader, Name: "trace-id"})

	require.Error(t, err)
	assert.True(t, httperr.IsStatus(err, http.StatusBadRequest))
}

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("resolves with the transformed value", func(t *testing.T) {
		t.Parallel()

		fut := pipeline.Async(context.Background(), pipe.NewBool(), "true",
			pipe.Metadata{Source: pipe.SourceQuery, Name: "flag"})

		out, err := fut.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, true, out)
	})

	t.Run("fails with the pipe error", func(t *testing.T) {
		t.Parallel()

		fut := pipeline.Async(context.Background(), pipe.NewBool(), "maybe",
			pipe.Metadata{Source: pipe.SourceQuery, Name: "flag"})

		_, err := fut.Wait(context.Background())
		require.Error(t, err)
		assert.True(t, httperr.IsStatus(err, http.StatusBadRequest))
	})

	t.Run("captures panics as errors", func(t *testing.T) {
		t.Parallel()

		explode := pipe.NewFunc("explode", func(context.Context, any, pipe.Metadata) (any, error) {
			panic("kaboom")
		})

		fut := pipeline.Async(context.Background(), explode, "x", pipe.Metadata{})

		_, err := fut.Wait(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrPanic)
	})
}
