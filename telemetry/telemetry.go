// Package telemetry wires OpenTelemetry export for traces and logs: OTLP
// HTTP exporters, providers with service resource attributes, and a
// slog.Handler bridge for routing log records through the log pipeline.
// Everything is opt-in; without OTEL_ENABLED and an endpoint the package
// does nothing.
package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/spigot-labs/spigot/build"
	"github.com/spigot-labs/spigot/envcfg"
	"github.com/spigot-labs/spigot/errors"
	"github.com/spigot-labs/spigot/logger"
	"github.com/spigot-labs/spigot/shutdown"
	"github.com/spigot-labs/spigot/stage"
)

const (
	defaultTimeout = 5 * time.Second

	// Collector service endpoint when running inside a GKE cluster.
	clusterEndpoint = "http://opentelemetry-collector.opentelemetry.svc.cluster.local:4318"
)

//nolint:gochecknoglobals
var (
	tracerProvider *sdktrace.TracerProvider
	loggerProvider *sdklog.LoggerProvider
)

// Config holds the OpenTelemetry configuration.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Endpoint       string
	Enabled        bool
	Timeout        time.Duration
}

// LoadConfigFromEnv assembles a Config from the environment: OTEL_ENABLED,
// OTEL_SERVICE_NAME (defaults to the logger component),
// OTEL_SERVICE_VERSION (defaults to the version recorded at build time),
// OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_TIMEOUT. The deployment
// environment comes from the stage package. Inside Kubernetes the endpoint
// defaults to the in-cluster collector.
func LoadConfigFromEnv(ctx context.Context) (*Config, error) {
	enabled := envcfg.Bool(ctx, "OTEL_ENABLED", envcfg.Default(false)).ValueOrElse(false)

	defaultEndpoint := ""
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		defaultEndpoint = clusterEndpoint
	}

	svcName, err := envcfg.String(ctx, "OTEL_SERVICE_NAME",
		envcfg.Default(logger.GetComponent(ctx))).
		Value()
	if err != nil {
		return nil, err
	}

	svcVersion, err := envcfg.String(ctx, "OTEL_SERVICE_VERSION",
		envcfg.Default(build.Version())).
		Value()
	if err != nil {
		return nil, err
	}

	endpoint, err := envcfg.String(ctx, "OTEL_EXPORTER_OTLP_ENDPOINT",
		envcfg.Default(defaultEndpoint)).
		Value()
	if err != nil {
		return nil, err
	}

	timeout, err := envcfg.Duration(ctx, "OTEL_EXPORTER_OTLP_TIMEOUT",
		envcfg.Default(defaultTimeout)).
		Value()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName:    svcName,
		ServiceVersion: svcVersion,
		Environment:    string(stage.Current(ctx)),
		Endpoint:       endpoint,
		Enabled:        enabled,
		Timeout:        timeout,
	}, nil
}

// Initialize stands up the trace and log pipelines described by config and
// registers a shutdown hook that flushes them. A disabled or endpoint-less
// config is a no-op, not an error.
func Initialize(ctx context.Context, config *Config) error {
	if !config.Enabled {
		logger.Get(ctx).Info("OpenTelemetry export is disabled")

		return nil
	}

	if config.Endpoint == "" {
		logger.Get(ctx).Warn("OpenTelemetry endpoint not configured, export will be disabled")

		return nil
	}

	attrs := []attribute.KeyValue{
		semconv.ServiceNameKey.String(config.ServiceName),
		semconv.ServiceVersionKey.String(config.ServiceVersion),
		semconv.DeploymentEnvironmentKey.String(config.Environment),
	}

	if commit := build.Current().GitCommit; commit != "" {
		attrs = append(attrs, attribute.String("service.commit", commit))
	}

	res, err := resource.New(ctx, resource.WithAttributes(attrs...))
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	traceExporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(config.Endpoint),
		otlptracehttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tracerProvider)

	logExporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpointURL(config.Endpoint),
		otlploghttp.WithTimeout(config.Timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	loggerProvider = sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
		sdklog.WithResource(res),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	// Route process logs to the collector as well: the default logger keeps
	// writing wherever it was configured to, and every record is also handed
	// to the OTLP log pipeline.
	if bridge, ok := LogHandler(config.ServiceName); ok {
		slog.SetDefault(slog.New(fanout(slog.Default().Handler(), bridge)))
	}

	shutdown.BeforeShutdown(func() {
		if err := Shutdown(context.Background()); err != nil {
			logger.Get().Error("telemetry shutdown", "error", err)
		}
	})

	logger.Get(ctx).Info("OpenTelemetry export initialized",
		"service", config.ServiceName,
		"version", config.ServiceVersion,
		"environment", config.Environment,
		"endpoint", config.Endpoint,
	)

	return nil
}

// LogHandler returns a slog.Handler that exports records through the OTLP
// log pipeline, and whether one is available. It reports false until
// Initialize has stood the pipeline up.
func LogHandler(name string) (slog.Handler, bool) {
	if loggerProvider == nil {
		return nil, false
	}

	return otelslog.NewHandler(name, otelslog.WithLoggerProvider(loggerProvider)), true
}

// Shutdown flushes and stops the providers. Safe to call when Initialize
// never ran.
func Shutdown(ctx context.Context) error {
	var errs errors.Collection

	if tracerProvider != nil {
		logger.Get(ctx).Info("Shutting down OpenTelemetry tracer provider")
		errs.Add(tracerProvider.Shutdown(ctx))

		tracerProvider = nil
	}

	if loggerProvider != nil {
		logger.Get(ctx).Info("Shutting down OpenTelemetry logger provider")
		errs.Add(loggerProvider.Shutdown(ctx))

		loggerProvider = nil
	}

	return errs.Err()
}
