package tracing

import (
	"context"
	"fmt"

	"github.com/flexprice/invoicing/internal/config"
	"github.com/flexprice/invoicing/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
)

const instrumentationName = "github.com/flexprice/invoicing"

// NewTracerProvider builds an OTLP/HTTP exporting provider and installs it
// globally together with the trace context and baggage propagators
func NewTracerProvider(ctx context.Context, cfg config.TracingConfig) (*sdktrace.TracerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithURLPath(cfg.URLPath),
	}
	if cfg.AuthHeader != "" {
		opts = append(opts, otlptracehttp.WithHeaders(map[string]string{"Authorization": cfg.AuthHeader}))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRate))),
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

// ProvideTracer returns the OTLP backed tracer when tracing is enabled and a
// no-op tracer otherwise. The provider is flushed on shutdown.
func ProvideTracer(lc fx.Lifecycle, cfg *config.Configuration, log *logger.Logger) (Tracer, error) {
	if !cfg.Tracing.Enabled {
		log.Info("tracing is disabled")
		return NewNoopTracer(), nil
	}

	tp, err := NewTracerProvider(context.Background(), cfg.Tracing)
	if err != nil {
		return nil, err
	}

	log.Infow("tracing initialized",
		"endpoint", cfg.Tracing.Endpoint,
		"service_name", cfg.Tracing.ServiceName,
		"sample_rate", cfg.Tracing.SampleRate,
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("flushing traces before shutdown")
			return tp.Shutdown(ctx)
		},
	})

	return NewTracer(tp, instrumentationName), nil
}
