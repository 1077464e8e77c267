package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/api"
	"github.com/vidalocal/discovery/internal/assistant"
	"github.com/vidalocal/discovery/internal/cache"
	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/clickhouse"
	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/directory"
	"github.com/vidalocal/discovery/internal/kafka"
	"github.com/vidalocal/discovery/internal/observability"
	"github.com/vidalocal/discovery/internal/registry"
	"github.com/vidalocal/discovery/internal/suggest"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	// Local development secrets; absence is fine in production.
	_ = godotenv.Load()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("starting discovery service",
		zap.String("service", cfg.Observability.ServiceName),
	)

	tracerShutdown, err := observability.InitTracer(cfg.Observability.ServiceName)
	if err != nil {
		logger.Warn("tracing initialization failed, continuing without tracing", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reference catalog. Loaded once; everything downstream reads it
	// without coordination.
	var cat *catalog.Catalog
	switch cfg.Catalog.Source {
	case "file":
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
	case "postgres":
		cat, err = catalog.LoadPostgres(ctx, cfg.Catalog.DSN)
	default:
		cat, err = catalog.LoadStatic()
	}
	if err != nil {
		return fmt.Errorf("loading catalog from %s: %w", cfg.Catalog.Source, err)
	}
	logger.Info("catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("cities", len(cat.Cities())),
		zap.Int("establishments", len(cat.Establishments())),
	)

	// The core works uncached, so a missing Redis degrades rather than
	// aborts startup.
	var redisCache *cache.RedisCache
	redisCache, err = cache.NewRedisCache(cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis initialization failed, running uncached", zap.Error(err))
		redisCache = nil
	} else {
		defer redisCache.Close()
		logger.Info("redis cache initialized")
	}

	var chClient *clickhouse.Client
	chClient, err = clickhouse.NewClient(cfg.ClickHouse, logger)
	if err != nil {
		logger.Warn("clickhouse initialization failed, analytics will be unavailable", zap.Error(err))
		chClient = nil
	} else {
		defer chClient.Close()
		if err := chClient.EnsureTables(ctx); err != nil {
			logger.Warn("clickhouse table creation failed", zap.Error(err))
		}
		logger.Info("clickhouse client initialized")
	}

	var analyticsWriter observability.AnalyticsWriter
	if chClient != nil {
		analyticsWriter = chClient
	}
	slowQueryDetector := observability.NewSlowQueryDetector(
		cfg.Suggest.SlowQuery.WarningThreshold,
		cfg.Suggest.SlowQuery.CriticalThreshold,
		logger,
		analyticsWriter,
	)

	suggester := suggest.New(cat, cfg.Suggest, redisCache, slowQueryDetector, logger)
	dir := directory.New(cat, redisCache, slowQueryDetector, logger)

	// Registration pipeline: Postgres store, Kafka stream, enrichment
	// worker. Each piece is optional in isolation.
	var regStore registry.Store
	var pgStore *registry.PostgresStore
	if cfg.Registry.DSN != "" {
		pgStore, err = registry.NewPostgresStore(cfg.Registry.DSN)
		if err != nil {
			logger.Warn("registry store initialization failed, registrations will be rejected", zap.Error(err))
		} else {
			defer pgStore.Close()
			regStore = pgStore
			logger.Info("registry store initialized")
		}
	}

	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer producer.Close()

	var regService *registry.Service
	var consumer *kafka.Consumer
	if regStore != nil {
		regService = registry.New(cat, regStore, producer, logger)

		worker := registry.NewWorker(cat, regStore, logger)
		consumer = kafka.NewConsumer(cfg.Kafka, worker.Handle, logger)
		if err := consumer.Start(ctx); err != nil {
			logger.Warn("kafka consumer start failed, enrichment will be unavailable", zap.Error(err))
		} else {
			defer consumer.Stop()
			logger.Info("registration worker started")
		}
	}

	var assistantClient api.AssistantClient
	if cfg.Assistant.APIKey != "" {
		assistantClient = assistant.NewClient(cfg.Assistant, logger)
		logger.Info("assistant client initialized", zap.String("model", cfg.Assistant.Model))
	} else {
		logger.Warn("assistant api key missing, chat surface disabled")
	}

	handler := api.NewHandler(suggester, dir, cat, regService, assistantClient, producer, logger)

	healthHandler := api.NewHealthHandler(logger)
	if redisCache != nil {
		healthHandler.Register("redis", redisCache)
	}
	if chClient != nil {
		healthHandler.Register("clickhouse", chClient)
	}
	if pgStore != nil {
		healthHandler.Register("postgres", pgStore)
	}
	if consumer != nil {
		healthHandler.Register("kafka", consumer)
	}

	router := api.NewRouter(handler, healthHandler, cfg.Server.MaxConcurrent, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		return err
	}

	logger.Info("starting graceful shutdown", zap.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", zap.Error(err))
	}

	cancel()

	if tracerShutdown != nil {
		if err := tracerShutdown(shutdownCtx); err != nil {
			logger.Error("tracer shutdown error", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
	return nil
}
