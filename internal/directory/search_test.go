package directory

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	return New(c, nil, nil, zap.NewNop())
}

func TestSearch_MatchesSubCategory(t *testing.T) {
	s := newTestService(t)

	result := s.Search(context.Background(), "farmácia", 0)
	if result.Kind != models.ResultEstablishments {
		t.Fatalf("expected establishment results, got %s", result.Kind)
	}
	if len(result.Establishments) != 1 || result.Establishments[0].Name != "Farmácia Vida" {
		t.Errorf("expected Farmácia Vida, got %v", result.Establishments)
	}
}

func TestSearch_AccentInsensitive(t *testing.T) {
	s := newTestService(t)

	// Unaccented query must match the accented catalog entry.
	result := s.Search(context.Background(), "mecanica", 0)
	if result.Kind != models.ResultEstablishments {
		t.Fatalf("expected establishment results, got %s", result.Kind)
	}
	if len(result.Establishments) != 1 || result.Establishments[0].Name != "Mecânica do João" {
		t.Errorf("expected Mecânica do João, got %v", result.Establishments)
	}
}

func TestSearch_CityScope(t *testing.T) {
	s := newTestService(t)

	scoped := s.Search(context.Background(), "farmacia", 1)
	if scoped.Kind != models.ResultEstablishments || len(scoped.Establishments) != 1 {
		t.Errorf("expected one match in city 1, got %+v", scoped)
	}

	// Same query in a city with no matching establishment falls back to
	// city-name search, ignoring the scope.
	other := s.Search(context.Background(), "farmacia", 2)
	if other.Kind != models.ResultCities {
		t.Errorf("expected city fallback, got %s with %d establishments",
			other.Kind, len(other.Establishments))
	}
}

func TestSearch_FallbackReturnsCities(t *testing.T) {
	s := newTestService(t)

	// No establishment matches "palmas"; the fallback pass finds the city.
	result := s.Search(context.Background(), "palmas", 0)
	if result.Kind != models.ResultCities {
		t.Fatalf("expected city results, got %s", result.Kind)
	}
	if len(result.Cities) != 1 || result.Cities[0].Name != "Palmas" {
		t.Errorf("expected Palmas, got %v", result.Cities)
	}
	if result.Cities[0].ID != 2 {
		t.Errorf("expected Palmas id 2, got %d", result.Cities[0].ID)
	}
}

func TestSearch_EmptyQueryYieldsEmptyEstablishments(t *testing.T) {
	s := newTestService(t)

	for _, q := range []string{"", "   "} {
		result := s.Search(context.Background(), q, 0)
		if result.Kind != models.ResultEstablishments {
			t.Errorf("query %q: expected establishment kind, got %s", q, result.Kind)
		}
		if len(result.Establishments) != 0 {
			t.Errorf("query %q: expected empty result, got %d", q, len(result.Establishments))
		}
	}
}

func TestSearch_NoMatchAnywhereYieldsEmptyCityList(t *testing.T) {
	s := newTestService(t)

	result := s.Search(context.Background(), "zzzzz", 0)
	if result.Kind != models.ResultCities {
		t.Fatalf("expected city fallback, got %s", result.Kind)
	}
	if len(result.Cities) != 0 {
		t.Errorf("expected no city matches, got %v", result.Cities)
	}
}

func TestSearchCities_NameWithUF(t *testing.T) {
	s := newTestService(t)

	// "palmas to" only matches via the "name uf" form.
	cities := s.SearchCities(context.Background(), "palmas to")
	if len(cities) != 1 || cities[0].Name != "Palmas" {
		t.Errorf("expected Palmas via name+uf, got %v", cities)
	}

	if got := s.SearchCities(context.Background(), ""); len(got) != 0 {
		t.Errorf("empty query should yield no cities, got %v", got)
	}
}

func TestFeatured(t *testing.T) {
	s := newTestService(t)

	all := s.Featured(0)
	if len(all) != 4 {
		t.Errorf("unscoped featured should cap at 4, got %d", len(all))
	}

	scoped := s.Featured(1)
	if len(scoped) != 10 {
		t.Errorf("expected all 10 establishments of city 1, got %d", len(scoped))
	}

	if got := s.Featured(999); len(got) != 0 {
		t.Errorf("unknown city should yield empty list, got %d", len(got))
	}
}

func TestLocalContext(t *testing.T) {
	result := &models.SearchResultSet{
		Kind: models.ResultEstablishments,
		Establishments: []models.Establishment{
			{Name: "Farmácia Vida", Address: "Av. Pará, 202", SubCategory: "Farmácia"},
			{Name: "Mecânica do João", Address: "Av. Maranhão, 789", SubCategory: "Oficina / Centro Automotivo"},
		},
	}

	want := "- Farmácia Vida: Av. Pará, 202 (Farmácia)\n- Mecânica do João: Av. Maranhão, 789 (Oficina / Centro Automotivo)"
	if got := LocalContext(result); got != want {
		t.Errorf("LocalContext mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestLocalContext_CityFallbackIsEmpty(t *testing.T) {
	result := &models.SearchResultSet{
		Kind:   models.ResultCities,
		Cities: []models.City{{Name: "Palmas"}},
	}
	if got := LocalContext(result); got != "" {
		t.Errorf("city results must not produce a digest, got %q", got)
	}
	if got := LocalContext(nil); got != "" {
		t.Errorf("nil result must produce empty digest, got %q", got)
	}
}
