package observability

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/models"
)

// SlowQueryDetector flags suggest/search requests that take longer than
// expected. The core is pure in-memory computation, so anything past the
// warning threshold usually means catalog growth or scheduler pressure worth
// investigating.
type SlowQueryDetector struct {
	warningThreshold  time.Duration
	criticalThreshold time.Duration
	logger            *zap.Logger
	analyticsWriter   AnalyticsWriter
}

type AnalyticsWriter interface {
	WriteQueryPerformance(ctx context.Context, event *models.QueryPerformanceEvent) error
}

func NewSlowQueryDetector(warning, critical time.Duration, logger *zap.Logger, aw AnalyticsWriter) *SlowQueryDetector {
	return &SlowQueryDetector{
		warningThreshold:  warning,
		criticalThreshold: critical,
		logger:            logger,
		analyticsWriter:   aw,
	}
}

func (sqd *SlowQueryDetector) Intercept(ctx context.Context, query, queryType string, duration time.Duration, results int64) {
	// Fast queries are the overwhelming majority and return immediately.
	if duration <= sqd.warningThreshold {
		return
	}

	traceID := TraceIDFromContext(ctx)
	severity := sqd.classifySeverity(duration)

	SlowQueryCounter.WithLabelValues(severity, queryType).Inc()

	sqd.logger.Warn("slow query detected",
		zap.String("trace_id", traceID),
		zap.String("query_hash", hashQueryForLog(query)),
		zap.String("query_type", queryType),
		zap.Float64("duration_ms", float64(duration.Microseconds())/1000),
		zap.Int64("results", results),
		zap.String("severity", severity),
	)

	// Analytics writes happen off the request path.
	if sqd.analyticsWriter != nil {
		event := &models.QueryPerformanceEvent{
			EventType:  "query_performance",
			QueryHash:  hashQueryForLog(query),
			QueryType:  queryType,
			DurationMs: float64(duration.Microseconds()) / 1000,
			Results:    results,
			Timestamp:  time.Now().UTC(),
			TraceID:    traceID,
			Source:     "core",
		}
		go func() {
			writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := sqd.analyticsWriter.WriteQueryPerformance(writeCtx, event); err != nil {
				sqd.logger.Error("failed to write query analytics",
					zap.String("trace_id", traceID),
					zap.Error(err),
				)
			}
		}()
	}
}

func (sqd *SlowQueryDetector) classifySeverity(d time.Duration) string {
	if d > sqd.criticalThreshold {
		return "critical"
	}
	if d > sqd.warningThreshold {
		return "warning"
	}
	return "normal"
}

// hashQueryForLog keeps raw user queries out of logs and analytics rows.
func hashQueryForLog(q string) string {
	h := sha256.Sum256([]byte(q))
	return fmt.Sprintf("%x", h[:8])
}
