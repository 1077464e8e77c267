package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/vidalocal/discovery/internal/models"
)

// LoadPostgres performs a one-shot read of the reference tables and closes
// the connection: the catalog stays immutable in memory for the process
// lifetime regardless of later changes in the database.
func LoadPostgres(ctx context.Context, dsn string) (*Catalog, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	defer db.Close()

	// One bulk read, no pool to keep around afterwards.
	db.SetMaxIdleConns(0)
	db.SetMaxOpenConns(2)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging catalog database: %w", err)
	}

	var data Data

	err = queryRows(ctx, db, `SELECT id, name, uf FROM states ORDER BY id`,
		func(rows *sql.Rows) error {
			var s models.State
			if err := rows.Scan(&s.ID, &s.Name, &s.UF); err != nil {
				return err
			}
			data.States = append(data.States, s)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading states: %w", err)
	}

	// City ordering is load-bearing (geo tie-break), so the table carries an
	// explicit sequence column; same for keywords and type mappings below.
	err = queryRows(ctx, db, `
		SELECT id, state_id, name, slug, active, latitude, longitude, COALESCE(population, 0)
		FROM cities ORDER BY seq`,
		func(rows *sql.Rows) error {
			var c models.City
			if err := rows.Scan(&c.ID, &c.StateID, &c.Name, &c.Slug, &c.Active,
				&c.Latitude, &c.Longitude, &c.Population); err != nil {
				return err
			}
			data.Cities = append(data.Cities, c)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading cities: %w", err)
	}

	err = queryRows(ctx, db, `
		SELECT id, name, category_id, sub_category, address, city_id,
		       latitude, longitude, rating, whatsapp
		FROM establishments WHERE status = 'approved' ORDER BY id`,
		func(rows *sql.Rows) error {
			var e models.Establishment
			if err := rows.Scan(&e.ID, &e.Name, &e.CategoryID, &e.SubCategory, &e.Address,
				&e.CityID, &e.Latitude, &e.Longitude, &e.Rating, &e.WhatsApp); err != nil {
				return err
			}
			data.Establishments = append(data.Establishments, e)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading establishments: %w", err)
	}

	err = queryRows(ctx, db, `SELECT id, name, active, priority FROM search_intents ORDER BY id`,
		func(rows *sql.Rows) error {
			var i models.SearchIntent
			if err := rows.Scan(&i.ID, &i.Name, &i.Active, &i.Priority); err != nil {
				return err
			}
			data.Intents = append(data.Intents, i)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading intents: %w", err)
	}

	err = queryRows(ctx, db, `SELECT intent_id, keyword, weight FROM search_keywords ORDER BY seq`,
		func(rows *sql.Rows) error {
			var k models.KeywordEntry
			if err := rows.Scan(&k.IntentID, &k.Keyword, &k.Weight); err != nil {
				return err
			}
			data.Keywords = append(data.Keywords, k)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading keywords: %w", err)
	}

	err = queryRows(ctx, db, `SELECT intent_id, type_label, weight FROM intent_type_mappings ORDER BY seq`,
		func(rows *sql.Rows) error {
			var m models.IntentTypeMapping
			if err := rows.Scan(&m.IntentID, &m.TypeLabel, &m.Weight); err != nil {
				return err
			}
			data.TypeMappings = append(data.TypeMappings, m)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading type mappings: %w", err)
	}

	return New(data)
}

func queryRows(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
