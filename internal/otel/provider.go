// Package otel provides OpenTelemetry tracer provider initialization and management.
package otel

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mrzor/proctitle/internal/config"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitProvider creates a tracer provider exporting over OTLP/HTTP to the
// configured endpoint. The HTTP client honors HTTP_PROXY, HTTPS_PROXY and
// NO_PROXY through net/http.
func InitProvider(cfg *config.OTELConfig, versionInfo string) (*sdktrace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	endpoint := cfg.GetEndpoint()
	log.Printf("OTEL: exporting %s spans to %s", cfg.ServiceName, endpoint)

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	resourceAttrs := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(versionInfo),
		),
	}
	if customAttrs := cfg.ParseResourceAttributes(); len(customAttrs) > 0 {
		resourceAttrs = append(resourceAttrs, resource.WithAttributes(customAttrs...))
	}

	res, err := resource.New(ctx, resourceAttrs...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// Syncer rather than batcher: the tool records a handful of spans and
	// exits, so nothing should wait on a batch timeout.
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	return tp, nil
}

// ShutdownProvider gracefully shuts down the tracer provider, flushing any remaining spans.
func ShutdownProvider(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}

	if err := tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}
