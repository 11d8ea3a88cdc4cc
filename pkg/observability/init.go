package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	tracerName = "view"
	meterName  = "view"
)

// Providers holds the initialized observability providers.
type Providers struct {
	// Tracer is the named tracer for creating spans around tree operations.
	Tracer trace.Tracer
	// Meter is the named meter for creating tree-shape and latency
	// instruments (see TreeMetrics).
	Meter metric.Meter
	// Logger is the context-aware structured logger.
	Logger *slog.Logger
	// MetricsHandler serves every instrument registered against Meter as a
	// Prometheus scrape endpoint. A long-running server wires it to an
	// HTTP listener; a one-shot CLI invocation can ignore it.
	MetricsHandler http.Handler
	// Shutdown flushes pending telemetry and releases resources. Must be
	// called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init initializes OpenTelemetry tracing, metrics, and structured logging.
// Metrics are always backed by a real SDK meter provider with a Prometheus
// reader attached (see Providers.MetricsHandler); tracing falls back to a
// no-op provider when cfg.OTLPEndpoint is empty, so the rest of the module
// never has to branch on whether a collector is configured.
func Init(cfg Config) (Providers, error) {
	ctx := context.Background()

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return Providers{}, fmt.Errorf("build resource: %w", err)
	}

	tp, tpShutdown, err := buildTracerProvider(ctx, cfg, res)
	if err != nil {
		return Providers{}, fmt.Errorf("build tracer provider: %w", err)
	}

	mp, metricsHandler, mpShutdown, err := buildMeterProvider(ctx, cfg, res)
	if err != nil {
		_ = tpShutdown(ctx)
		return Providers{}, fmt.Errorf("build meter provider: %w", err)
	}

	logger := slog.New(NewTracingHandler(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}),
		cfg.ServiceName, cfg.Environment, cfg.Mode,
	))

	shutdown := func(ctx context.Context) error {
		if err := tpShutdown(ctx); err != nil {
			return fmt.Errorf("shutdown tracer provider: %w", err)
		}

		if err := mpShutdown(ctx); err != nil {
			return fmt.Errorf("shutdown meter provider: %w", err)
		}

		return nil
	}

	return Providers{
		Tracer:         tp.Tracer(tracerName),
		Meter:          mp.Meter(meterName),
		Logger:         logger,
		MetricsHandler: metricsHandler,
		Shutdown:       shutdown,
	}, nil
}

func buildTracerProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (trace.TracerProvider, func(context.Context) error, error) {
	if cfg.OTLPEndpoint == "" {
		return nooptrace.NewTracerProvider(), func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint), otlptracegrpc.WithInsecure())
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp trace exporter: %w", err)
	}

	sampler := sdktrace.AlwaysSample()
	if !cfg.DebugTrace {
		sampler = sdktrace.TraceIDRatioBased(0.1)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}

// buildMeterProvider always attaches a Prometheus reader, so every
// TreeMetrics instrument is scrapeable regardless of whether OTLP is
// configured; an OTLP periodic reader is layered on top when cfg.OTLPEndpoint
// is set, so the same instruments also flow to a collector.
func buildMeterProvider(
	ctx context.Context, cfg Config, res *resource.Resource,
) (metric.MeterProvider, http.Handler, func(context.Context) error, error) {
	registry := prometheus.NewRegistry()

	promReader, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	opts := []sdkmetric.Option{
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promReader),
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint), otlpmetricgrpc.WithInsecure())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create otlp metric exporter: %w", err)
		}

		opts = append(opts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(15*time.Second))))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return mp, handler, mp.Shutdown, nil
}
