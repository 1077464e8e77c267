package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_search_duration_seconds",
			Help:    "Directory search request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind", "status"},
	)

	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_search_requests_total",
			Help: "Total number of directory search requests",
		},
		[]string{"kind", "status"},
	)

	SuggestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_suggest_requests_total",
			Help: "Total number of intent suggestion requests",
		},
		[]string{"status"},
	)

	CityFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_search_city_fallback_total",
			Help: "Directory searches that fell back to city-name matching",
		},
	)

	GeoResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_geo_resolve_total",
			Help: "Total number of nearest-city resolutions",
		},
		[]string{"status"},
	)

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_cache_hits_total",
			Help: "Total number of Redis cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_cache_misses_total",
			Help: "Total number of Redis cache misses",
		},
	)

	AssistantRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_assistant_requests_total",
			Help: "Total number of assistant upstream calls",
		},
		[]string{"status"},
	)

	AssistantRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_assistant_retries_total",
			Help: "Total number of assistant retries after rate limiting",
		},
	)

	AssistantCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_assistant_cache_entries",
			Help: "Current number of cached assistant responses",
		},
	)

	RequestsRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_requests_rate_limited_total",
			Help: "API requests rejected by the concurrency limiter",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discovery_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CHQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_clickhouse_query_duration_seconds",
			Help:    "ClickHouse analytics query duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		},
		[]string{"query_type", "status"},
	)

	SlowQueryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_slow_query_total",
			Help: "Total number of slow queries",
		},
		[]string{"severity", "query_type"},
	)

	RegistrationEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_registration_events_total",
			Help: "Total number of registration pipeline events processed",
		},
		[]string{"status"},
	)

	RegistrationLag = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "discovery_registration_lag_seconds",
			Help: "Current registration pipeline lag in seconds",
		},
	)
)
