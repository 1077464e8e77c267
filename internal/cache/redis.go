package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
)

// RedisCache is a read-through cache for suggestion and directory-search
// responses. The core recomputes everything cheaply, so the cache is an
// optimization only: callers treat a nil cache or a cache error as a miss.
type RedisCache struct {
	client redis.UniversalClient
	ttl    config.CacheTTLConfig
	logger *zap.Logger
}

func NewRedisCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisCache, error) {
	var client redis.UniversalClient

	if len(cfg.Addresses) > 1 {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:        cfg.Addresses,
			Password:     cfg.Password,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Addresses[0],
			Password:     cfg.Password,
			DB:           cfg.DB,
			PoolSize:     cfg.PoolSize,
			MinIdleConns: cfg.MinIdleConns,
			DialTimeout:  cfg.DialTimeout,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis cache connected", zap.Strings("addresses", cfg.Addresses))

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
		logger: logger,
	}, nil
}

func (rc *RedisCache) GetSuggestion(ctx context.Context, query string) (*models.Suggestion, error) {
	key := suggestionKey(query)
	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		observability.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get suggestion: %w", err)
	}

	observability.CacheHits.Inc()
	var s models.Suggestion
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("cache unmarshal suggestion: %w", err)
	}
	return &s, nil
}

func (rc *RedisCache) SetSuggestion(ctx context.Context, query string, s *models.Suggestion) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache marshal suggestion: %w", err)
	}
	return rc.client.Set(ctx, suggestionKey(query), data, rc.ttl.Suggestions).Err()
}

func (rc *RedisCache) GetSearchResults(ctx context.Context, query string, cityID int) (*models.SearchResultSet, error) {
	key := searchKey(query, cityID)
	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		observability.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get search results: %w", err)
	}

	observability.CacheHits.Inc()
	var rs models.SearchResultSet
	if err := json.Unmarshal([]byte(val), &rs); err != nil {
		return nil, fmt.Errorf("cache unmarshal search results: %w", err)
	}
	return &rs, nil
}

func (rc *RedisCache) SetSearchResults(ctx context.Context, query string, cityID int, rs *models.SearchResultSet) error {
	data, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("cache marshal search results: %w", err)
	}
	return rc.client.Set(ctx, searchKey(query, cityID), data, rc.ttl.SearchResults).Err()
}

func (rc *RedisCache) GetCitySearch(ctx context.Context, query string) ([]models.City, error) {
	key := fmt.Sprintf("cs:%s", hashString(query))
	val, err := rc.client.Get(ctx, key).Result()
	if err == redis.Nil {
		observability.CacheMisses.Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get city search: %w", err)
	}

	observability.CacheHits.Inc()
	var cities []models.City
	if err := json.Unmarshal([]byte(val), &cities); err != nil {
		return nil, fmt.Errorf("cache unmarshal city search: %w", err)
	}
	return cities, nil
}

func (rc *RedisCache) SetCitySearch(ctx context.Context, query string, cities []models.City) error {
	data, err := json.Marshal(cities)
	if err != nil {
		return fmt.Errorf("cache marshal city search: %w", err)
	}
	key := fmt.Sprintf("cs:%s", hashString(query))
	return rc.client.Set(ctx, key, data, rc.ttl.Cities).Err()
}

func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

func suggestionKey(query string) string {
	return fmt.Sprintf("sg:%s", hashString(query))
}

func searchKey(query string, cityID int) string {
	return fmt.Sprintf("sr:%s", hashString(fmt.Sprintf("%s:%d", query, cityID)))
}

func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", h[:8])
}
