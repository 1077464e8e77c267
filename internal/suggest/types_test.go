package suggest

import (
	"reflect"
	"testing"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
)

func TestSuggestTypes_FlattensInRankOrder(t *testing.T) {
	ts := NewTypeSuggester(testCatalog(t), 8)

	intents := []models.SearchIntent{
		{ID: 3, Name: "Saúde/Médico"},
		{ID: 2, Name: "Automotivo/Emergência"},
	}

	got := ts.SuggestTypes(intents)
	want := []string{"Hospital", "Farmácia", "Laboratório", "Bombeiros", "Oficina", "Auto Peças", "Guincho"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("types out of order:\ngot:  %v\nwant: %v", got, want)
	}
}

func TestSuggestTypes_CapsAtMaxTypes(t *testing.T) {
	ts := NewTypeSuggester(testCatalog(t), 8)

	// Three intents contribute 10 mapping rows; the list truncates at 8.
	intents := []models.SearchIntent{{ID: 1}, {ID: 2}, {ID: 3}}
	got := ts.SuggestTypes(intents)
	if len(got) != 8 {
		t.Errorf("expected 8 labels, got %d: %v", len(got), got)
	}
}

func TestSuggestTypes_DeduplicatesExactLabels(t *testing.T) {
	data := catalog.Data{
		Intents: []models.SearchIntent{
			{ID: 1, Name: "Alimentação", Active: true},
			{ID: 2, Name: "Varejo/Compras", Active: true},
		},
		TypeMappings: []models.IntentTypeMapping{
			{IntentID: 1, TypeLabel: "Delivery", Weight: 10},
			{IntentID: 2, TypeLabel: "Delivery", Weight: 8},
			{IntentID: 2, TypeLabel: "Loja", Weight: 10},
		},
	}
	c, err := catalog.New(data)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}

	ts := NewTypeSuggester(c, 8)
	got := ts.SuggestTypes([]models.SearchIntent{{ID: 1}, {ID: 2}})
	want := []string{"Delivery", "Loja"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected deduplicated labels %v, got %v", want, got)
	}
}

func TestSuggestTypes_EmptyInputYieldsEmptySlice(t *testing.T) {
	ts := NewTypeSuggester(testCatalog(t), 8)

	got := ts.SuggestTypes(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestSuggestTypes_IntentWithoutMappings(t *testing.T) {
	ts := NewTypeSuggester(testCatalog(t), 8)

	// Pets (id 7) has no mapping rows in the seed tables.
	got := ts.SuggestTypes([]models.SearchIntent{{ID: 7, Name: "Pets"}})
	if len(got) != 0 {
		t.Errorf("expected no labels for unmapped intent, got %v", got)
	}
}
