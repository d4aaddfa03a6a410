package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func TestTracingWrapsRequests(t *testing.T) {
	tracer := &recordingTracer{}
	mw := Tracing(WithTracer(tracer), WithRequestFilter(func(r *http.Request) bool {
		return r.URL.Path != "/healthz"
	}))

	var served int
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if len(tracer.names) != 1 || tracer.names[0] != "GET /" {
		t.Errorf("spans = %v, want [GET /]", tracer.names)
	}
	if served != 2 {
		t.Errorf("served = %d, want 2", served)
	}
}

func TestTracerResolution(t *testing.T) {
	custom := &recordingTracer{}
	if Tracer(WithTracer(custom)) != trace.Tracer(custom) {
		t.Error("WithTracer should take precedence")
	}
	if Tracer(WithTracerName("x")) == nil {
		t.Error("global tracer should never be nil")
	}
	_, span := StartSpan(context.Background(), "op")
	span.End()
}
