// Package suggest implements the intent-detection pipeline: free text is
// normalized, scored against the keyword table and expanded into suggested
// establishment-type labels.
package suggest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/cache"
	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/config"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
)

type Service struct {
	scorer    *Scorer
	types     *TypeSuggester
	cache     *cache.RedisCache
	slowQuery *observability.SlowQueryDetector
	logger    *zap.Logger
}

func New(
	repo catalog.Repository,
	cfg config.SuggestConfig,
	redisCache *cache.RedisCache,
	slowQuery *observability.SlowQueryDetector,
	logger *zap.Logger,
) *Service {
	return &Service{
		scorer:    NewScorer(repo, cfg.MaxIntents),
		types:     NewTypeSuggester(repo, cfg.MaxTypes),
		cache:     redisCache,
		slowQuery: slowQuery,
		logger:    logger,
	}
}

// Suggest runs the full pipeline for one query. The result always carries
// non-nil slices so an unmatched query serializes as empty arrays rather
// than null.
func (s *Service) Suggest(ctx context.Context, query string) *models.Suggestion {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "suggest.suggest",
		attribute.Int("query_len", len(query)),
	)
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.GetSuggestion(ctx, query)
		if err != nil {
			s.logger.Warn("suggestion cache lookup error", zap.Error(err))
		}
		if cached != nil {
			observability.SuggestRequestsTotal.WithLabelValues("cache_hit").Inc()
			return cached
		}
	}

	ranked := s.scorer.ScoreIntents(query)

	intents := make([]models.SearchIntent, 0, len(ranked))
	for _, si := range ranked {
		intents = append(intents, si.Intent)
	}

	result := &models.Suggestion{
		Intents: intents,
		Types:   s.types.SuggestTypes(intents),
	}

	if s.cache != nil && query != "" {
		if err := s.cache.SetSuggestion(ctx, query, result); err != nil {
			s.logger.Warn("suggestion cache set error", zap.Error(err))
		}
	}

	observability.SuggestRequestsTotal.WithLabelValues("success").Inc()
	if s.slowQuery != nil {
		s.slowQuery.Intercept(ctx, query, "suggest", time.Since(start), int64(len(result.Types)))
	}

	return result
}
