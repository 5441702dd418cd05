package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig controls span export.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// SetupTracing installs a batching OTLP/HTTP tracer provider when enabled. The
// returned shutdown flushes pending spans and is safe to call when tracing is
// disabled.
func SetupTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return noop, nil
	}

	var opts []otlptracehttp.Option
	if cfg.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return noop, err
	}

	name := cfg.ServiceName
	if name == "" {
		name = "minibit"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(name)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tp.Shutdown, nil
}

// Tracer returns the tracer used for simulation spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartTick opens the span that covers one simulation step.
func StartTick(ctx context.Context, mode string, tick uint64) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "tick",
		trace.WithAttributes(
			modeAttribute(mode),
			attribute.Int64("minibit.tick", int64(tick)),
		),
	)
}

// StartStage opens a child span for one pipeline stage.
func StartStage(ctx context.Context, stage string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, stage)
}

func modeAttribute(mode string) attribute.KeyValue {
	return attribute.String("minibit.mode", mode)
}
