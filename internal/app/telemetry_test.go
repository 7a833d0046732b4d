package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

func TestNewResource(t *testing.T) {
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "service.name=overridden,team=catalog-team")

	res, err := newResource(context.Background(), Config{Env: "staging"})
	if err != nil {
		t.Fatalf("newResource() error = %v", err)
	}

	want := map[attribute.Key]string{
		"service.name":           serviceName,
		"service.namespace":      serviceNamespace,
		"service.version":        version,
		"deployment.environment": "staging",
		"team":                   "catalog-team",
	}

	got := make(map[attribute.Key]string)
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}

	for key, value := range want {
		if got[key] != value {
			t.Errorf("resource %s = %q, want %q", key, got[key], value)
		}
	}

	if _, ok := got["host.name"]; !ok {
		t.Errorf("resource is missing host.name")
	}
}

func TestNewSampler(t *testing.T) {
	traceID := trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	sampledParent := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}))

	tests := []struct {
		name   string
		ratio  float64
		parent context.Context
		want   sdktrace.SamplingDecision
	}{
		{name: "sample everything", ratio: 1, parent: context.Background(), want: sdktrace.RecordAndSample},
		{name: "ratio above one", ratio: 3, parent: context.Background(), want: sdktrace.RecordAndSample},
		{name: "sample nothing", ratio: 0, parent: context.Background(), want: sdktrace.Drop},
		{name: "follows sampled parent", ratio: 0, parent: sampledParent, want: sdktrace.RecordAndSample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newSampler(tt.ratio).ShouldSample(sdktrace.SamplingParameters{
				ParentContext: tt.parent,
				TraceID:       traceID,
				Name:          "GET /movies",
				Kind:          trace.SpanKindServer,
			})

			if result.Decision != tt.want {
				t.Errorf("ShouldSample() decision = %v, want %v", result.Decision, tt.want)
			}
		})
	}
}

func TestInitTelemetryWithoutCollector(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := InitTelemetry(Config{}, logger)
	if err != nil {
		t.Fatalf("InitTelemetry() error = %v", err)
	}

	shutdown(context.Background())
}
