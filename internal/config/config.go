package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Redis         RedisConfig         `yaml:"redis"`
	ClickHouse    ClickHouseConfig    `yaml:"clickhouse"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Registry      RegistryConfig      `yaml:"registry"`
	Assistant     AssistantConfig     `yaml:"assistant"`
	Suggest       SuggestConfig       `yaml:"suggest"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxConcurrent   int           `yaml:"max_concurrent"`
}

// CatalogConfig selects where the read-only reference catalog is loaded from.
// Whatever the source, the catalog is loaded once at startup and never
// refreshed while the process runs.
type CatalogConfig struct {
	Source string `yaml:"source"` // static, file or postgres
	Path   string `yaml:"path"`   // JSON document for source=file
	DSN    string `yaml:"dsn"`    // connection string for source=postgres
}

type RedisConfig struct {
	Addresses    []string       `yaml:"addresses"`
	Password     string         `yaml:"password"`
	DB           int            `yaml:"db"`
	PoolSize     int            `yaml:"pool_size"`
	MinIdleConns int            `yaml:"min_idle_conns"`
	DialTimeout  time.Duration  `yaml:"dial_timeout"`
	ReadTimeout  time.Duration  `yaml:"read_timeout"`
	WriteTimeout time.Duration  `yaml:"write_timeout"`
	TTL          CacheTTLConfig `yaml:"ttl"`
}

type CacheTTLConfig struct {
	Suggestions   time.Duration `yaml:"suggestions"`
	SearchResults time.Duration `yaml:"search_results"`
	Cities        time.Duration `yaml:"cities"`
}

type ClickHouseConfig struct {
	Addresses    []string      `yaml:"addresses"`
	Database     string        `yaml:"database"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	QueryTimeout time.Duration `yaml:"query_timeout"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
}

type KafkaConfig struct {
	Brokers            []string      `yaml:"brokers"`
	TopicSearchLogs    string        `yaml:"topic_search_logs"`
	TopicRegistrations string        `yaml:"topic_registrations"`
	TopicDLQ           string        `yaml:"topic_dlq"`
	ConsumerGroup      string        `yaml:"consumer_group"`
	BatchSize          int           `yaml:"batch_size"`
	BatchTimeout       time.Duration `yaml:"batch_timeout"`
	MaxRetries         int           `yaml:"max_retries"`
}

type RegistryConfig struct {
	DSN string `yaml:"dsn"`
}

type AssistantConfig struct {
	Endpoint       string               `yaml:"endpoint"`
	APIKey         string               `yaml:"api_key"`
	Model          string               `yaml:"model"`
	RequestTimeout time.Duration        `yaml:"request_timeout"`
	Retry          RetryConfig          `yaml:"retry"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuit_breaker"`
	CacheCapacity  int                  `yaml:"cache_capacity"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

type CircuitBreakerConfig struct {
	MaxRequests      uint32        `yaml:"max_requests"`
	Interval         time.Duration `yaml:"interval"`
	Timeout          time.Duration `yaml:"timeout"`
	FailureThreshold uint32        `yaml:"failure_threshold"`
}

type SuggestConfig struct {
	MaxIntents int             `yaml:"max_intents"`
	MaxTypes   int             `yaml:"max_types"`
	SlowQuery  SlowQueryConfig `yaml:"slow_query"`
}

type SlowQueryConfig struct {
	WarningThreshold  time.Duration `yaml:"warning_threshold"`
	CriticalThreshold time.Duration `yaml:"critical_threshold"`
}

type ObservabilityConfig struct {
	TracingEndpoint string `yaml:"tracing_endpoint"`
	LogLevel        string `yaml:"log_level"`
	ServiceName     string `yaml:"service_name"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	data = []byte(os.ExpandEnv(string(data)))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxConcurrent:   1000,
		},
		Catalog: CatalogConfig{
			Source: "static",
		},
		Redis: RedisConfig{
			Addresses:    []string{"localhost:6379"},
			PoolSize:     100,
			MinIdleConns: 10,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  1 * time.Second,
			WriteTimeout: 1 * time.Second,
			TTL: CacheTTLConfig{
				Suggestions:   10 * time.Minute,
				SearchResults: 2 * time.Minute,
				Cities:        30 * time.Minute,
			},
		},
		ClickHouse: ClickHouseConfig{
			Addresses:    []string{"localhost:9000"},
			Database:     "discovery_analytics",
			DialTimeout:  5 * time.Second,
			QueryTimeout: 2 * time.Second,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Kafka: KafkaConfig{
			Brokers:            []string{"localhost:9092"},
			TopicSearchLogs:    "discovery.search-logs",
			TopicRegistrations: "discovery.registrations",
			TopicDLQ:           "discovery.registrations.dlq",
			ConsumerGroup:      "discovery-registry",
			BatchSize:          100,
			BatchTimeout:       1 * time.Second,
			MaxRetries:         3,
		},
		Assistant: AssistantConfig{
			Endpoint:       "https://generativelanguage.googleapis.com/v1beta",
			Model:          "gemini-2.5-flash",
			RequestTimeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts: 3,
				InitialWait: 2 * time.Second,
				MaxWait:     16 * time.Second,
				Multiplier:  2.0,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxRequests:      10,
				Interval:         30 * time.Second,
				Timeout:          30 * time.Second,
				FailureThreshold: 5,
			},
			CacheCapacity: 50,
		},
		Suggest: SuggestConfig{
			MaxIntents: 3,
			MaxTypes:   8,
			SlowQuery: SlowQueryConfig{
				WarningThreshold:  50 * time.Millisecond,
				CriticalThreshold: 200 * time.Millisecond,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:    "info",
			ServiceName: "discovery-api",
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Catalog.Source {
	case "static":
	case "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog path required for source=file")
		}
	case "postgres":
		if c.Catalog.DSN == "" {
			return fmt.Errorf("catalog dsn required for source=postgres")
		}
	default:
		return fmt.Errorf("unknown catalog source: %q", c.Catalog.Source)
	}
	if len(c.Redis.Addresses) == 0 {
		return fmt.Errorf("at least one redis address required")
	}
	if c.Suggest.MaxIntents <= 0 {
		return fmt.Errorf("suggest max_intents must be positive")
	}
	if c.Suggest.MaxTypes <= 0 {
		return fmt.Errorf("suggest max_types must be positive")
	}
	if c.Assistant.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("assistant retry max_attempts must be positive")
	}
	if c.Assistant.CacheCapacity <= 0 {
		return fmt.Errorf("assistant cache_capacity must be positive")
	}
	return nil
}
