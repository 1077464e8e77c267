// Package registry accepts establishment registrations submitted by business
// owners. Accepted submissions are persisted as pending and published to the
// registration stream, where a background worker enriches them with geo data
// before a human reviews them.
package registry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
)

const (
	StatusPending  = "pending"
	StatusEnriched = "enriched"
)

var (
	ErrMissingName    = errors.New("registry: name is required")
	ErrMissingAddress = errors.New("registry: address is required")
	ErrUnknownCity    = errors.New("registry: unknown city")
	ErrBadCoordinates = errors.New("registry: invalid coordinates")
)

// Store persists registrations. The Postgres implementation is the production
// one; tests use an in-memory stand-in.
type Store interface {
	Insert(ctx context.Context, reg *models.Registration) error
	UpdateEnrichment(ctx context.Context, id string, nearestCityID int, distanceKm float64) error
	ListByStatus(ctx context.Context, status string, limit int) ([]models.Registration, error)
}

// Publisher hands accepted registrations to the enrichment stream.
type Publisher interface {
	PublishRegistration(ctx context.Context, event *models.RegistrationEvent) error
}

type Service struct {
	catalog   *catalog.Catalog
	store     Store
	publisher Publisher
	logger    *zap.Logger
}

func New(cat *catalog.Catalog, store Store, publisher Publisher, logger *zap.Logger) *Service {
	return &Service{
		catalog:   cat,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Register validates a submission, persists it as pending and publishes the
// enrichment event. A publish failure does not roll back the insert; the
// registration stays pending and can be re-published by an operator.
func (s *Service) Register(ctx context.Context, reg *models.Registration) (*models.Registration, error) {
	ctx, span := observability.StartSpan(ctx, "registry.register")
	defer span.End()

	if err := s.validate(reg); err != nil {
		observability.RegistrationEventsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	reg.ID = uuid.New().String()
	reg.Status = StatusPending
	reg.CreatedAt = time.Now().UTC()

	if err := s.store.Insert(ctx, reg); err != nil {
		observability.RegistrationEventsTotal.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("storing registration: %w", err)
	}

	event := &models.RegistrationEvent{
		RegistrationID: reg.ID,
		Name:           reg.Name,
		CityID:         reg.CityID,
		Latitude:       reg.Latitude,
		Longitude:      reg.Longitude,
		Timestamp:      reg.CreatedAt,
	}
	if s.publisher != nil {
		if err := s.publisher.PublishRegistration(ctx, event); err != nil {
			s.logger.Error("publishing registration event",
				zap.Error(err),
				zap.String("registration_id", reg.ID),
			)
		}
	}

	observability.RegistrationEventsTotal.WithLabelValues("accepted").Inc()
	s.logger.Info("registration accepted",
		zap.String("registration_id", reg.ID),
		zap.String("name", reg.Name),
		zap.Int("city_id", reg.CityID),
	)

	return reg, nil
}

// Pending lists registrations awaiting review.
func (s *Service) Pending(ctx context.Context, limit int) ([]models.Registration, error) {
	return s.store.ListByStatus(ctx, StatusPending, limit)
}

func (s *Service) validate(reg *models.Registration) error {
	if strings.TrimSpace(reg.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(reg.Address) == "" {
		return ErrMissingAddress
	}
	if _, ok := s.catalog.CityByID(reg.CityID); !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCity, reg.CityID)
	}
	if math.IsNaN(reg.Latitude) || math.IsInf(reg.Latitude, 0) ||
		math.IsNaN(reg.Longitude) || math.IsInf(reg.Longitude, 0) {
		return ErrBadCoordinates
	}
	return nil
}
