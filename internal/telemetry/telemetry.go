// Package telemetry configures OpenTelemetry tracing for the service.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.uber.org/zap"
)

// Exporter kinds.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// Options configures tracing.
type Options struct {
	Exporter     string
	Endpoint     string
	Insecure     bool
	SamplerRatio float64
	ServiceName  string
	Environment  string
	Version      string
}

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider. With the "none" exporter the
// global no-op provider is left in place and the returned shutdown does
// nothing.
func Setup(ctx context.Context, opts Options, logger *zap.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	kind := strings.ToLower(strings.TrimSpace(opts.Exporter))
	if kind == "" || kind == ExporterNone {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := buildExporter(ctx, kind, opts)
	if err != nil {
		return nil, err
	}

	serviceName := opts.ServiceName
	if serviceName == "" {
		serviceName = "cardxpert"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(opts.Version),
		attribute.String("deployment.environment", opts.Environment),
	))
	if err != nil {
		logger.Warn("otel resource init failed, continuing", zap.Error(err))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(opts.SamplerRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("tracing initialized",
		zap.String("exporter", kind),
		zap.String("service", serviceName),
		zap.String("endpoint", opts.Endpoint),
	)
	return tp.Shutdown, nil
}

func buildExporter(ctx context.Context, kind string, opts Options) (sdktrace.SpanExporter, error) {
	switch kind {
	case ExporterStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ExporterOTLP:
		var httpOpts []otlptracehttp.Option
		if opts.Endpoint != "" {
			httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(opts.Endpoint))
		}
		if opts.Insecure {
			httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, httpOpts...)
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", kind)
	}
}

func clampRatio(v float64) float64 {
	switch {
	case v <= 0:
		return 0.1
	case v > 1:
		return 1
	default:
		return v
	}
}
