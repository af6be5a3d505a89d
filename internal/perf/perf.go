// Package perf wraps OpenTelemetry tracing for the batch commands. Spans are
// collected by an in-memory exporter so tests can assert on them; release
// builds run with tracing disabled unless a profiling flag turns it on.
package perf

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/packsmith/minecraft-pack-manager/internal/constants"
)

type Config struct {
	Enabled bool
}

var (
	mu       sync.Mutex
	provider *sdktrace.TracerProvider
	exporter *spanExporter
	enabled  bool
)

func Init(config Config) error {
	mu.Lock()
	defer mu.Unlock()

	if provider != nil {
		return errors.New("perf already initialized")
	}

	enabled = config.Enabled
	if !enabled {
		return nil
	}

	exporter = newSpanExporter()
	provider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(provider)
	return nil
}

// Reset tears down the tracer provider. Primarily for tests, which pair it
// with t.Cleanup.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if provider != nil {
		_ = provider.Shutdown(context.Background())
	}
	provider = nil
	exporter = nil
	enabled = false
	otel.SetTracerProvider(noop.NewTracerProvider())
}

func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return tracer().Start(ctx, name, opts...)
}

func WithAttributes(attrs ...attribute.KeyValue) trace.SpanStartOption {
	return trace.WithAttributes(attrs...)
}

// Flush forces the provider to hand everything to the exporter.
func Flush(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()

	if provider == nil {
		return nil
	}
	return provider.ForceFlush(ctx)
}

func tracer() trace.Tracer {
	mu.Lock()
	defer mu.Unlock()

	if provider == nil || !enabled {
		return noop.NewTracerProvider().Tracer(constants.AppName)
	}
	return provider.Tracer(constants.AppName)
}

// SnapshotSpans returns every span exported so far.
func SnapshotSpans() ([]sdktrace.ReadOnlySpan, error) {
	mu.Lock()
	defer mu.Unlock()

	if exporter == nil {
		return nil, errors.New("perf not initialized")
	}
	return exporter.Snapshot(), nil
}
