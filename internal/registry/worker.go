package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/geo"
	"github.com/vidalocal/discovery/internal/models"
)

// Worker enriches accepted registrations: it resolves the nearest catalog
// city from the submitted coordinates and records the great-circle distance
// to it, flagging submissions whose declared city disagrees with their
// location.
type Worker struct {
	catalog *catalog.Catalog
	store   Store
	logger  *zap.Logger
}

func NewWorker(cat *catalog.Catalog, store Store, logger *zap.Logger) *Worker {
	return &Worker{
		catalog: cat,
		store:   store,
		logger:  logger,
	}
}

// Handle processes one registration event. Wired as the consumer handler.
func (w *Worker) Handle(ctx context.Context, event *models.RegistrationEvent) error {
	nearest, err := geo.ResolveNearest(event.Latitude, event.Longitude, w.catalog.Cities())
	if err != nil {
		return fmt.Errorf("resolving nearest city for %s: %w", event.RegistrationID, err)
	}

	distance := geo.Haversine(event.Latitude, event.Longitude, nearest.Latitude, nearest.Longitude)

	if nearest.ID != event.CityID {
		w.logger.Warn("registration city mismatch",
			zap.String("registration_id", event.RegistrationID),
			zap.Int("declared_city_id", event.CityID),
			zap.Int("nearest_city_id", nearest.ID),
			zap.Float64("distance_km", distance),
		)
	}

	if err := w.store.UpdateEnrichment(ctx, event.RegistrationID, nearest.ID, distance); err != nil {
		return fmt.Errorf("enriching registration %s: %w", event.RegistrationID, err)
	}

	w.logger.Info("registration enriched",
		zap.String("registration_id", event.RegistrationID),
		zap.Int("nearest_city_id", nearest.ID),
		zap.Float64("distance_km", distance),
	)
	return nil
}
