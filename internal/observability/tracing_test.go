package observability

import (
	"context"
	"testing"
)

func TestTraceIDFromContext_Empty(t *testing.T) {
	ctx := context.Background()
	if id := TraceIDFromContext(ctx); id != "" {
		t.Errorf("expected empty trace ID from background context, got %q", id)
	}
}

func TestTracer_ReturnsNonNil(t *testing.T) {
	if Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
}

func TestStartSpan_ReturnsContext(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test-span")
	defer span.End()

	if ctx == nil {
		t.Error("expected non-nil context from StartSpan")
	}
	if span == nil {
		t.Error("expected non-nil span from StartSpan")
	}
}
