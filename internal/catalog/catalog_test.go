package catalog

import (
	"strings"
	"testing"

	"github.com/vidalocal/discovery/internal/models"
)

func TestLoadStatic(t *testing.T) {
	c, err := LoadStatic()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Cities()) == 0 || len(c.Establishments()) == 0 {
		t.Fatal("seed catalog should not be empty")
	}
	if len(c.Intents()) != 12 {
		t.Errorf("expected 12 seed intents, got %d", len(c.Intents()))
	}
}

func TestNew_DuplicateCityIDFailsFast(t *testing.T) {
	data := Data{
		States: []models.State{{ID: 2, Name: "Goiás", UF: "GO"}},
		Cities: []models.City{
			{ID: 4, StateID: 2, Name: "Goiânia", Active: true},
			{ID: 4, StateID: 2, Name: "Goiânia", Active: true},
		},
	}

	_, err := New(data)
	if err == nil {
		t.Fatal("expected error for duplicate city id")
	}
	if !strings.Contains(err.Error(), "duplicate city id 4") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestNew_NonPositiveKeywordWeight(t *testing.T) {
	data := Data{
		Intents:  []models.SearchIntent{{ID: 1, Name: "Alimentação", Active: true}},
		Keywords: []models.KeywordEntry{{IntentID: 1, Keyword: "pizza", Weight: 0}},
	}

	if _, err := New(data); err == nil {
		t.Fatal("expected error for non-positive keyword weight")
	}
}

func TestNew_DanglingReferences(t *testing.T) {
	tests := []struct {
		name string
		data Data
	}{
		{
			"city with unknown state",
			Data{Cities: []models.City{{ID: 1, StateID: 99, Name: "Gurupi"}}},
		},
		{
			"establishment with unknown city",
			Data{Establishments: []models.Establishment{{ID: "e1", Name: "Farmácia Vida", CityID: 99}}},
		},
		{
			"keyword with unknown intent",
			Data{Keywords: []models.KeywordEntry{{IntentID: 99, Keyword: "pizza", Weight: 10}}},
		},
		{
			"type mapping with unknown intent",
			Data{TypeMappings: []models.IntentTypeMapping{{IntentID: 99, TypeLabel: "Hospital", Weight: 10}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.data); err == nil {
				t.Error("expected load error")
			}
		})
	}
}

func TestCitiesByStateUF(t *testing.T) {
	c, err := LoadStatic()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	to := c.CitiesByStateUF("TO")
	if len(to) != 10 {
		t.Errorf("expected 10 TO cities, got %d", len(to))
	}
	for _, city := range to {
		if city.StateID != 1 {
			t.Errorf("city %s has state %d, want 1", city.Name, city.StateID)
		}
	}

	if got := c.CitiesByStateUF("XX"); len(got) != 0 {
		t.Errorf("unknown UF should yield empty list, got %d cities", len(got))
	}
}

func TestLookupsByID(t *testing.T) {
	c, err := LoadStatic()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	city, ok := c.CityByID(2)
	if !ok || city.Name != "Palmas" {
		t.Errorf("expected city 2 = Palmas, got %+v (ok=%v)", city, ok)
	}

	if _, ok := c.CityByID(999); ok {
		t.Error("unknown city id should not resolve")
	}

	intent, ok := c.IntentByID(1)
	if !ok || intent.Name != "Alimentação" {
		t.Errorf("expected intent 1 = Alimentação, got %+v (ok=%v)", intent, ok)
	}
}
