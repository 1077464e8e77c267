// Package clickhouse is the analytics sink: search events and slow-query
// performance samples are appended here for offline analysis.
package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
)

type Client struct {
	conn   driver.Conn
	logger *zap.Logger
}

func NewClient(cfg config.ClickHouseConfig, logger *zap.Logger) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: cfg.Addresses,
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": int(cfg.QueryTimeout.Seconds()),
		},
		DialTimeout:  cfg.DialTimeout,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("opening clickhouse connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("pinging clickhouse: %w", err)
	}

	logger.Info("clickhouse client connected", zap.Strings("addresses", cfg.Addresses))

	return &Client{
		conn:   conn,
		logger: logger,
	}, nil
}

// WriteQueryPerformance stores one slow-query sample. Implements the detector's
// analytics writer.
func (c *Client) WriteQueryPerformance(ctx context.Context, event *models.QueryPerformanceEvent) error {
	query := `
		INSERT INTO query_performance (
			event_type, query_hash, query_type, duration_ms,
			results, timestamp, trace_id, source
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	return c.conn.Exec(ctx, query,
		event.EventType,
		event.QueryHash,
		event.QueryType,
		event.DurationMs,
		event.Results,
		event.Timestamp,
		event.TraceID,
		event.Source,
	)
}

// WriteSearchEvent appends one executed search to the events table.
func (c *Client) WriteSearchEvent(ctx context.Context, event *models.SearchLogEvent) error {
	query := `
		INSERT INTO search_events (
			query, city_id, kind, results, took_ms, request_id, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	return c.conn.Exec(ctx, query,
		event.Query,
		event.CityID,
		event.Kind,
		event.Results,
		event.TookMs,
		event.RequestID,
		event.Timestamp,
	)
}

// TopQueries aggregates the most frequent search terms over the trailing
// window. Feeds the keyword-table curation workflow.
func (c *Client) TopQueries(ctx context.Context, since time.Time, limit int) (map[string]int64, error) {
	ctx, span := observability.StartSpan(ctx, "ch.top_queries",
		attribute.Int("limit", limit),
	)
	defer span.End()

	start := time.Now()

	query := `
		SELECT query, count() AS cnt
		FROM search_events
		WHERE timestamp >= ?
		GROUP BY query
		ORDER BY cnt DESC
		LIMIT ?
	`

	rows, err := c.conn.Query(ctx, query, since, limit)
	if err != nil {
		observability.CHQueryDuration.WithLabelValues("top_queries", "error").Observe(time.Since(start).Seconds())
		return nil, fmt.Errorf("ch top queries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var q string
		var cnt int64
		if err := rows.Scan(&q, &cnt); err != nil {
			return nil, fmt.Errorf("scanning top query row: %w", err)
		}
		out[q] = cnt
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating top query rows: %w", err)
	}

	observability.CHQueryDuration.WithLabelValues("top_queries", "success").Observe(time.Since(start).Seconds())
	return out, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) EnsureTables(ctx context.Context) error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS query_performance (
			event_type String,
			query_hash String,
			query_type String,
			duration_ms Float64,
			results Int64,
			timestamp DateTime,
			trace_id String,
			source String
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(timestamp)
		ORDER BY (timestamp, query_hash)`,

		`CREATE TABLE IF NOT EXISTS search_events (
			query String,
			city_id Int32,
			kind String,
			results Int32,
			took_ms Int64,
			request_id String,
			timestamp DateTime
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(timestamp)
		ORDER BY (timestamp, query)`,
	}

	for _, ddl := range tables {
		if err := c.conn.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}

	c.logger.Info("clickhouse tables ensured")
	return nil
}
