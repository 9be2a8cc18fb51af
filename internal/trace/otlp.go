package trace

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// OTLPExporter emits one client span per backend request to an OTLP
// HTTP collector.
type OTLPExporter struct {
	provider *sdktrace.TracerProvider
	tracer   oteltrace.Tracer
}

// NewOTLPExporter creates an OTLP exporter for the given endpoint. An
// empty endpoint falls back to OTEL_EXPORTER_OTLP_ENDPOINT; if neither
// is set, tracing is disabled and (nil, nil) is returned.
func NewOTLPExporter(ctx context.Context, endpoint, serviceName string) (*OTLPExporter, error) {
	if endpoint == "" {
		endpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	if endpoint == "" {
		return nil, nil // Disabled
	}

	// The otlptracehttp endpoint option wants host:port, not a URL.
	if i := strings.Index(endpoint, "://"); i >= 0 {
		endpoint = endpoint[i+3:]
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // For local dev; make configurable
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	if serviceName == "" {
		serviceName = os.Getenv("OTEL_SERVICE_NAME")
	}
	if serviceName == "" {
		serviceName = "chainboard"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	return &OTLPExporter{
		provider: provider,
		tracer:   provider.Tracer("chainboard/api"),
	}, nil
}

// ExportRequest emits a span covering the request's wall time.
func (e *OTLPExporter) ExportRequest(ctx context.Context, entry Entry) {
	if e == nil {
		return
	}

	_, span := e.tracer.Start(ctx, entry.Method+" "+entry.Path,
		oteltrace.WithTimestamp(entry.Start),
		oteltrace.WithSpanKind(oteltrace.SpanKindClient),
	)

	attrs := []attribute.KeyValue{
		attribute.String("chainboard.request.method", entry.Method),
		attribute.String("chainboard.request.path", entry.Path),
		attribute.Int("chainboard.request.status", entry.Status),
		attribute.Int("chainboard.request.seq", entry.Seq),
	}
	if entry.Err != nil {
		attrs = append(attrs, attribute.String("chainboard.request.error", entry.Err.Error()))
	}
	span.SetAttributes(attrs...)

	span.End(oteltrace.WithTimestamp(entry.Start.Add(entry.Duration)))
}

// Shutdown flushes and closes the exporter
func (e *OTLPExporter) Shutdown(ctx context.Context) error {
	if e == nil {
		return nil
	}
	return e.provider.Shutdown(ctx)
}
