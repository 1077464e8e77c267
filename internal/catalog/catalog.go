// Package catalog owns the read-only reference data the whole service runs
// on: states, cities, establishments and the intent/keyword/type tables. A
// catalog is built once at startup from one of three sources (embedded seed,
// JSON file, Postgres) and is immutable afterwards, so concurrent reads need
// no locking. Table order is preserved everywhere because scoring and
// geo-resolution tie-breaks depend on it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vidalocal/discovery/internal/models"
)

// Repository is the capability surface consumed by the search, suggestion and
// geo components. Slices returned by a Repository must never be mutated.
type Repository interface {
	States() []models.State
	Cities() []models.City
	Establishments() []models.Establishment
	Intents() []models.SearchIntent
	Keywords() []models.KeywordEntry
	TypeMappings() []models.IntentTypeMapping
}

// Data is the raw table set a Catalog is built from.
type Data struct {
	States         []models.State             `json:"states"`
	Cities         []models.City              `json:"cities"`
	Establishments []models.Establishment     `json:"establishments"`
	Intents        []models.SearchIntent      `json:"intents"`
	Keywords       []models.KeywordEntry      `json:"keywords"`
	TypeMappings   []models.IntentTypeMapping `json:"type_mappings"`
}

type Catalog struct {
	data Data

	stateByID  map[int]models.State
	cityByID   map[int]models.City
	intentByID map[int]models.SearchIntent
}

// New validates the table set and builds the lookup indexes. Identity
// collisions fail the load outright: upstream exports are known to carry
// duplicate city rows, and silently keeping either copy makes lookups
// depend on scan order.
func New(data Data) (*Catalog, error) {
	c := &Catalog{
		data:       data,
		stateByID:  make(map[int]models.State, len(data.States)),
		cityByID:   make(map[int]models.City, len(data.Cities)),
		intentByID: make(map[int]models.SearchIntent, len(data.Intents)),
	}

	for _, s := range data.States {
		if _, ok := c.stateByID[s.ID]; ok {
			return nil, fmt.Errorf("duplicate state id %d (%s)", s.ID, s.Name)
		}
		c.stateByID[s.ID] = s
	}

	for _, city := range data.Cities {
		if dup, ok := c.cityByID[city.ID]; ok {
			return nil, fmt.Errorf("duplicate city id %d (%s / %s)", city.ID, dup.Name, city.Name)
		}
		if _, ok := c.stateByID[city.StateID]; !ok {
			return nil, fmt.Errorf("city %d (%s) references unknown state %d", city.ID, city.Name, city.StateID)
		}
		c.cityByID[city.ID] = city
	}

	for _, e := range data.Establishments {
		if _, ok := c.cityByID[e.CityID]; !ok {
			return nil, fmt.Errorf("establishment %s (%s) references unknown city %d", e.ID, e.Name, e.CityID)
		}
	}

	for _, i := range data.Intents {
		if _, ok := c.intentByID[i.ID]; ok {
			return nil, fmt.Errorf("duplicate intent id %d (%s)", i.ID, i.Name)
		}
		c.intentByID[i.ID] = i
	}

	for _, kw := range data.Keywords {
		if kw.Weight <= 0 {
			return nil, fmt.Errorf("keyword %q has non-positive weight %d", kw.Keyword, kw.Weight)
		}
		if _, ok := c.intentByID[kw.IntentID]; !ok {
			return nil, fmt.Errorf("keyword %q references unknown intent %d", kw.Keyword, kw.IntentID)
		}
	}

	for _, m := range data.TypeMappings {
		if _, ok := c.intentByID[m.IntentID]; !ok {
			return nil, fmt.Errorf("type mapping %q references unknown intent %d", m.TypeLabel, m.IntentID)
		}
	}

	return c, nil
}

// LoadStatic builds the catalog from the embedded seed tables.
func LoadStatic() (*Catalog, error) {
	return New(seedData())
}

// LoadFile builds the catalog from a JSON document with the same table
// layout as Data.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing catalog file %s: %w", path, err)
	}
	return New(data)
}

func (c *Catalog) States() []models.State                   { return c.data.States }
func (c *Catalog) Cities() []models.City                    { return c.data.Cities }
func (c *Catalog) Establishments() []models.Establishment   { return c.data.Establishments }
func (c *Catalog) Intents() []models.SearchIntent           { return c.data.Intents }
func (c *Catalog) Keywords() []models.KeywordEntry          { return c.data.Keywords }
func (c *Catalog) TypeMappings() []models.IntentTypeMapping { return c.data.TypeMappings }

func (c *Catalog) StateByID(id int) (models.State, bool) {
	s, ok := c.stateByID[id]
	return s, ok
}

func (c *Catalog) CityByID(id int) (models.City, bool) {
	city, ok := c.cityByID[id]
	return city, ok
}

func (c *Catalog) IntentByID(id int) (models.SearchIntent, bool) {
	i, ok := c.intentByID[id]
	return i, ok
}

// CitiesByStateUF filters cities by their state's region code. An unknown UF
// yields an empty list, not an error.
func (c *Catalog) CitiesByStateUF(uf string) []models.City {
	var stateID int
	found := false
	for _, s := range c.data.States {
		if s.UF == uf {
			stateID = s.ID
			found = true
			break
		}
	}
	if !found {
		return []models.City{}
	}

	out := []models.City{}
	for _, city := range c.data.Cities {
		if city.StateID == stateID {
			out = append(out, city)
		}
	}
	return out
}
