package registry

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vidalocal/discovery/internal/models"
)

// PostgresStore persists registrations in the registrations table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, reg *models.Registration) error {
	const q = `
		INSERT INTO registrations (
			id, name, category_id, sub_category, address, phone, whatsapp,
			website, hours, description, latitude, longitude, maps_link,
			city_id, user_id, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := s.db.ExecContext(ctx, q,
		reg.ID, reg.Name, reg.CategoryID, reg.SubCategory, reg.Address,
		reg.Phone, reg.WhatsApp, reg.Website, reg.Hours, reg.Description,
		reg.Latitude, reg.Longitude, reg.MapsLink, reg.CityID, reg.UserID,
		reg.Status, reg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateEnrichment(ctx context.Context, id string, nearestCityID int, distanceKm float64) error {
	const q = `
		UPDATE registrations
		SET nearest_city_id = $2, distance_km = $3, status = $4
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id, nearestCityID, distanceKm, StatusEnriched)
	if err != nil {
		return fmt.Errorf("updating registration enrichment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking enrichment update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("registration %s not found", id)
	}
	return nil
}

func (s *PostgresStore) ListByStatus(ctx context.Context, status string, limit int) ([]models.Registration, error) {
	const q = `
		SELECT id, name, category_id, sub_category, address, phone, whatsapp,
			website, hours, description, latitude, longitude, maps_link,
			city_id, user_id, status, created_at
		FROM registrations
		WHERE status = $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, q, status, limit)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	defer rows.Close()

	var out []models.Registration
	for rows.Next() {
		var r models.Registration
		if err := rows.Scan(
			&r.ID, &r.Name, &r.CategoryID, &r.SubCategory, &r.Address,
			&r.Phone, &r.WhatsApp, &r.Website, &r.Hours, &r.Description,
			&r.Latitude, &r.Longitude, &r.MapsLink, &r.CityID, &r.UserID,
			&r.Status, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning registration row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating registration rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
