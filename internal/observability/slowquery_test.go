package observability

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/models"
)

type capturingWriter struct {
	mu     sync.Mutex
	events []*models.QueryPerformanceEvent
	done   chan struct{}
}

func (cw *capturingWriter) WriteQueryPerformance(ctx context.Context, event *models.QueryPerformanceEvent) error {
	cw.mu.Lock()
	cw.events = append(cw.events, event)
	cw.mu.Unlock()
	close(cw.done)
	return nil
}

func TestSlowQueryDetector_FastQueryIgnored(t *testing.T) {
	cw := &capturingWriter{done: make(chan struct{})}
	sqd := NewSlowQueryDetector(100*time.Millisecond, 500*time.Millisecond, zap.NewNop(), cw)

	sqd.Intercept(context.Background(), "farmacia", "directory", 5*time.Millisecond, 3)

	select {
	case <-cw.done:
		t.Error("fast query should not produce an analytics event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSlowQueryDetector_SlowQueryWritesAnalytics(t *testing.T) {
	cw := &capturingWriter{done: make(chan struct{})}
	sqd := NewSlowQueryDetector(10*time.Millisecond, 500*time.Millisecond, zap.NewNop(), cw)

	sqd.Intercept(context.Background(), "pneu furou", "suggest", 50*time.Millisecond, 2)

	select {
	case <-cw.done:
	case <-time.After(time.Second):
		t.Fatal("expected analytics event for slow query")
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()
	if len(cw.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(cw.events))
	}
	ev := cw.events[0]
	if ev.QueryType != "suggest" {
		t.Errorf("expected query_type suggest, got %q", ev.QueryType)
	}
	if ev.QueryHash == "" || ev.QueryHash == "pneu furou" {
		t.Errorf("query must be hashed in analytics rows, got %q", ev.QueryHash)
	}
}

func TestSlowQueryDetector_Severity(t *testing.T) {
	sqd := NewSlowQueryDetector(100*time.Millisecond, 500*time.Millisecond, zap.NewNop(), nil)

	tests := []struct {
		d    time.Duration
		want string
	}{
		{50 * time.Millisecond, "normal"},
		{200 * time.Millisecond, "warning"},
		{800 * time.Millisecond, "critical"},
	}

	for _, tt := range tests {
		if got := sqd.classifySeverity(tt.d); got != tt.want {
			t.Errorf("classifySeverity(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
