// Package directory implements catalog search: establishments matched by
// normalized substring against name and sub-category, with a city-name
// fallback so a plausible query never comes back empty-handed.
package directory

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/cache"
	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
	"github.com/vidalocal/discovery/internal/text"
)

const defaultFeaturedLimit = 4

type Service struct {
	catalog   *catalog.Catalog
	cache     *cache.RedisCache
	slowQuery *observability.SlowQueryDetector
	logger    *zap.Logger
}

func New(cat *catalog.Catalog, redisCache *cache.RedisCache, slowQuery *observability.SlowQueryDetector, logger *zap.Logger) *Service {
	return &Service{
		catalog:   cat,
		cache:     redisCache,
		slowQuery: slowQuery,
		logger:    logger,
	}
}

// Search runs the two-pass directory lookup. The primary pass filters
// establishments by normalized substring on name or sub-category, scoped to
// cityID when non-zero. When the primary pass matches nothing, a fallback
// pass matches city names instead, ignoring the scope; the result set's Kind
// tells the caller which shape it got. An empty query yields an empty
// establishment set with no fallback.
func (s *Service) Search(ctx context.Context, query string, cityID int) *models.SearchResultSet {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "directory.search",
		attribute.Int("city_id", cityID),
	)
	defer span.End()

	q := text.Normalize(query)
	if strings.TrimSpace(q) == "" {
		return &models.SearchResultSet{
			Kind:           models.ResultEstablishments,
			Establishments: []models.Establishment{},
		}
	}

	if s.cache != nil {
		cached, err := s.cache.GetSearchResults(ctx, q, cityID)
		if err != nil {
			s.logger.Warn("search cache lookup error", zap.Error(err))
		}
		if cached != nil {
			observability.SearchRequestsTotal.WithLabelValues(string(cached.Kind), "cache_hit").Inc()
			return cached
		}
	}

	result := &models.SearchResultSet{
		Kind:           models.ResultEstablishments,
		Establishments: []models.Establishment{},
	}
	for _, e := range s.catalog.Establishments() {
		if cityID != 0 && e.CityID != cityID {
			continue
		}
		if strings.Contains(text.Normalize(e.Name), q) || strings.Contains(text.Normalize(e.SubCategory), q) {
			result.Establishments = append(result.Establishments, e)
		}
	}

	if len(result.Establishments) == 0 {
		result = &models.SearchResultSet{
			Kind:   models.ResultCities,
			Cities: s.matchCities(q),
		}
		observability.CityFallbackTotal.Inc()
	}

	if s.cache != nil {
		if err := s.cache.SetSearchResults(ctx, q, cityID, result); err != nil {
			s.logger.Warn("search cache set error", zap.Error(err))
		}
	}

	observability.SearchRequestsTotal.WithLabelValues(string(result.Kind), "success").Inc()
	observability.SearchRequestDuration.WithLabelValues(string(result.Kind), "success").Observe(time.Since(start).Seconds())
	if s.slowQuery != nil {
		s.slowQuery.Intercept(ctx, query, "directory", time.Since(start), int64(result.Len()))
	}

	return result
}

// SearchCities matches cities by normalized name or "name uf". Used by the
// city picker; an empty query yields an empty list.
func (s *Service) SearchCities(ctx context.Context, query string) []models.City {
	q := text.Normalize(query)
	if strings.TrimSpace(q) == "" {
		return []models.City{}
	}

	if s.cache != nil {
		cached, err := s.cache.GetCitySearch(ctx, q)
		if err != nil {
			s.logger.Warn("city search cache lookup error", zap.Error(err))
		}
		if cached != nil {
			return cached
		}
	}

	cities := s.matchCities(q)

	if s.cache != nil {
		if err := s.cache.SetCitySearch(ctx, q, cities); err != nil {
			s.logger.Warn("city search cache set error", zap.Error(err))
		}
	}

	return cities
}

// Featured lists the establishments promoted on the landing view: all of a
// city's establishments when scoped, otherwise the first few of the catalog.
func (s *Service) Featured(cityID int) []models.Establishment {
	establishments := s.catalog.Establishments()

	if cityID != 0 {
		out := []models.Establishment{}
		for _, e := range establishments {
			if e.CityID == cityID {
				out = append(out, e)
			}
		}
		return out
	}

	n := len(establishments)
	if n > defaultFeaturedLimit {
		n = defaultFeaturedLimit
	}
	out := make([]models.Establishment, n)
	copy(out, establishments[:n])
	return out
}

// LocalContext renders the plain-text digest of matched establishments that
// is handed to the assistant collaborator for grounding. Only establishment
// results contribute; a city fallback produces an empty digest.
func LocalContext(result *models.SearchResultSet) string {
	if result == nil || result.Kind != models.ResultEstablishments {
		return ""
	}

	var b strings.Builder
	for i, e := range result.Establishments {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(e.Name)
		b.WriteString(": ")
		b.WriteString(e.Address)
		b.WriteString(" (")
		b.WriteString(e.SubCategory)
		b.WriteString(")")
	}
	return b.String()
}

// matchCities is shared by the fallback pass and the city picker. The "name
// uf" form lets "palmas to" disambiguate between same-named cities in
// different states.
func (s *Service) matchCities(normalizedQuery string) []models.City {
	out := []models.City{}
	for _, c := range s.catalog.Cities() {
		full := text.Normalize(c.Name)
		if state, ok := s.catalog.StateByID(c.StateID); ok {
			full = text.Normalize(c.Name + " " + state.UF)
		}
		if strings.Contains(full, normalizedQuery) || strings.Contains(text.Normalize(c.Name), normalizedQuery) {
			out = append(out, c)
		}
	}
	return out
}
