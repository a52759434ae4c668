package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Trace exporter names accepted by Config.TraceExporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

var (
	// ErrNilContext is returned by Init when called with a nil context.
	ErrNilContext = errors.New("telemetry: nil context")

	// ErrUnknownExporter is returned when Config names an unsupported exporter.
	ErrUnknownExporter = errors.New("telemetry: unknown exporter")
)

// Config selects how spans are exported.
type Config struct {
	ServiceName   string
	TraceExporter string
	OTLPEndpoint  string
	// Writer receives stdout exporter output. Defaults to os.Stdout.
	Writer io.Writer
}

// DefaultConfig returns a configuration with tracing disabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:   "causalcore",
		TraceExporter: ExporterNone,
		OTLPEndpoint:  "localhost:4317",
	}
}

// ShutdownFunc flushes and releases everything Init set up.
type ShutdownFunc func(context.Context) error

// Init installs a global tracer provider for cfg and returns its shutdown
// function. With the "none" exporter the global no-op provider is kept and the
// returned function does nothing.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case ExporterNone, "":
		return func(context.Context) error { return nil }, nil
	case ExporterStdout:
		opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if cfg.Writer != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
		}
		exporter, err = stdouttrace.New(opts...)
	case ExporterOTLP:
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownExporter, cfg.TraceExporter)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cfg.TraceExporter, err)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", cfg.ServiceName),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// MetricsHandler serves the default Prometheus registry.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
