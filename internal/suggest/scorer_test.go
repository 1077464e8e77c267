package suggest

import (
	"testing"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.LoadStatic()
	if err != nil {
		t.Fatalf("loading seed catalog: %v", err)
	}
	return c
}

func TestScoreIntents_PizzaRanksAlimentacaoFirst(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	ranked := s.ScoreIntents("pizza")
	if len(ranked) == 0 {
		t.Fatal("expected at least one intent for 'pizza'")
	}
	if ranked[0].Intent.Name != "Alimentação" {
		t.Errorf("expected Alimentação first, got %q", ranked[0].Intent.Name)
	}
	if ranked[0].Score != 10 {
		t.Errorf("expected score 10, got %d", ranked[0].Score)
	}
}

func TestScoreIntents_WeightsAccumulate(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	ranked := s.ScoreIntents("pneu furou")
	if len(ranked) == 0 {
		t.Fatal("expected intents for 'pneu furou'")
	}
	if ranked[0].Intent.Name != "Automotivo/Emergência" {
		t.Errorf("expected Automotivo/Emergência first, got %q", ranked[0].Intent.Name)
	}
	if ranked[0].Score != 20 {
		t.Errorf("expected accumulated score 20, got %d", ranked[0].Score)
	}
}

func TestScoreIntents_AccentInsensitive(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	// "ônibus" and "onibus" are separate keyword rows pointing at the same
	// intent; a normalized query matches both and their weights accumulate.
	ranked := s.ScoreIntents("horário do ônibus")
	if len(ranked) == 0 {
		t.Fatal("expected intents for accented query")
	}
	if ranked[0].Intent.Name != "Transporte Público" {
		t.Errorf("expected Transporte Público first, got %q", ranked[0].Intent.Name)
	}
	if ranked[0].Score != 20 {
		t.Errorf("expected score 20 from both keyword spellings, got %d", ranked[0].Score)
	}
}

func TestScoreIntents_SubstringMatching(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	// "pizzaria" contains "pizza"; no word-boundary requirement.
	ranked := s.ScoreIntents("melhor pizzaria da cidade")
	if len(ranked) == 0 {
		t.Fatal("expected a match inside a longer word")
	}
	if ranked[0].Intent.Name != "Alimentação" {
		t.Errorf("expected Alimentação, got %q", ranked[0].Intent.Name)
	}
}

func TestScoreIntents_UnmatchedQueryIsEmpty(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	if got := s.ScoreIntents("xyzqwk"); len(got) != 0 {
		t.Errorf("expected no intents for unmatched query, got %d", len(got))
	}
}

func TestScoreIntents_EmptyQueryShortCircuits(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	if got := s.ScoreIntents(""); got != nil {
		t.Errorf("expected nil for empty query, got %v", got)
	}
	if got := s.ScoreIntents("   "); got != nil {
		t.Errorf("expected nil for whitespace query, got %v", got)
	}
}

func TestScoreIntents_CapsAtMaxIntents(t *testing.T) {
	s := NewScorer(testCatalog(t), 3)

	// Touch four different intents in one query.
	ranked := s.ScoreIntents("pizza pneu febre corte")
	if len(ranked) != 3 {
		t.Fatalf("expected 3 intents, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("intents not in descending score order: %v", ranked)
		}
	}
}

func TestScoreIntents_TieKeepsTableOrder(t *testing.T) {
	data := catalog.Data{
		States: []models.State{{ID: 1, Name: "Tocantins", UF: "TO"}},
		Intents: []models.SearchIntent{
			{ID: 1, Name: "Alimentação", Active: true},
			{ID: 2, Name: "Pets", Active: true},
		},
		Keywords: []models.KeywordEntry{
			{IntentID: 1, Keyword: "pizza", Weight: 10},
			{IntentID: 2, Keyword: "banho", Weight: 10},
		},
	}
	c, err := catalog.New(data)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	s := NewScorer(c, 3)
	ranked := s.ScoreIntents("pizza e banho")
	if len(ranked) != 2 {
		t.Fatalf("expected 2 intents, got %d", len(ranked))
	}
	// Equal scores: the intent whose keyword appears earlier in the table wins.
	if ranked[0].Intent.ID != 1 || ranked[1].Intent.ID != 2 {
		t.Errorf("tie must preserve keyword-table order, got %v", ranked)
	}
}

func TestScoreIntents_InactiveIntentExcluded(t *testing.T) {
	data := catalog.Data{
		Intents: []models.SearchIntent{
			{ID: 1, Name: "Alimentação", Active: false},
		},
		Keywords: []models.KeywordEntry{
			{IntentID: 1, Keyword: "pizza", Weight: 10},
		},
	}
	c, err := catalog.New(data)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	s := NewScorer(c, 3)
	if got := s.ScoreIntents("pizza"); len(got) != 0 {
		t.Errorf("inactive intent should never be suggested, got %v", got)
	}
}
