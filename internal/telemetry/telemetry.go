// Package telemetry sets up OpenTelemetry tracing and metrics for the stack
// engine. Exporters are only created when an OTLP endpoint is configured;
// otherwise no-op providers are returned.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	// Scope is the instrumentation scope name for the engine's tracer and meter.
	Scope = "pancakes/stack"

	envTraceEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envMetricsEndpoint = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"
	envServiceName     = "OTEL_SERVICE_NAME"
	envInsecure        = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultServiceName = "pancakes"
)

// Config selects exporters. Empty endpoints disable the matching signal.
type Config struct {
	ServiceName     string
	TraceEndpoint   string // host:port or URL for OTLP/HTTP traces
	MetricsEndpoint string // host:port or URL for OTLP/gRPC metrics
	Insecure        bool
}

// ConfigFromEnv reads the standard OTEL_* variables. Connections are
// plaintext unless OTEL_EXPORTER_OTLP_INSECURE is "false".
func ConfigFromEnv() Config {
	cfg := Config{
		ServiceName:     os.Getenv(envServiceName),
		TraceEndpoint:   os.Getenv(envTraceEndpoint),
		MetricsEndpoint: os.Getenv(envMetricsEndpoint),
		Insecure:        !strings.EqualFold(os.Getenv(envInsecure), "false"),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	return cfg
}

// Providers holds the tracer and meter handed to the engine.
type Providers struct {
	Tracer trace.Tracer
	Meter  metric.Meter
	// Shutdown flushes pending telemetry. Call it before exit.
	Shutdown func(ctx context.Context) error
}

type shutdownFunc func(ctx context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init builds the providers described by cfg.
func Init(ctx context.Context, cfg Config) (Providers, error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(cfg.ServiceName),
	)

	tp, tpShutdown, err := buildTracerProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}
	mp, mpShutdown, err := buildMeterProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, errors.Join(fmt.Errorf("build meter provider: %w", err), tpShutdown(ctx))
	}

	return Providers{
		Tracer: tp.Tracer(Scope),
		Meter:  mp.Meter(Scope),
		Shutdown: func(ctx context.Context) error {
			return errors.Join(tpShutdown(ctx), mpShutdown(ctx))
		},
	}, nil
}

func buildTracerProvider(ctx context.Context, cfg Config, res *resource.Resource) (trace.TracerProvider, shutdownFunc, error) {
	if cfg.TraceEndpoint == "" {
		return nooptrace.NewTracerProvider(), noopShutdown, nil
	}

	var opts []otlptracehttp.Option
	if hasScheme(cfg.TraceEndpoint) {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.TraceEndpoint))
	} else {
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.TraceEndpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return tp, tp.Shutdown, nil
}

func buildMeterProvider(ctx context.Context, cfg Config, res *resource.Resource) (metric.MeterProvider, shutdownFunc, error) {
	if cfg.MetricsEndpoint == "" {
		return noopmetric.NewMeterProvider(), noopShutdown, nil
	}

	var opts []otlpmetricgrpc.Option
	if hasScheme(cfg.MetricsEndpoint) {
		opts = append(opts, otlpmetricgrpc.WithEndpointURL(cfg.MetricsEndpoint))
	} else {
		opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.MetricsEndpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	return mp, mp.Shutdown, nil
}

func hasScheme(endpoint string) bool {
	return strings.Contains(endpoint, "://")
}
