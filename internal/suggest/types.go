package suggest

import (
	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
)

// TypeSuggester expands ranked intents into establishment-type labels for
// narrowing a search. Labels are display strings, so deduplication is exact
// string equality, never normalized. Mapping weights are carried in the data
// model but do not influence selection yet.
type TypeSuggester struct {
	mappings []models.IntentTypeMapping
	maxTypes int
}

func NewTypeSuggester(repo catalog.Repository, maxTypes int) *TypeSuggester {
	return &TypeSuggester{
		mappings: repo.TypeMappings(),
		maxTypes: maxTypes,
	}
}

// SuggestTypes flattens the mapping rows of each intent, in intent rank order
// then table order, dropping duplicate labels and truncating at maxTypes.
func (ts *TypeSuggester) SuggestTypes(intents []models.SearchIntent) []string {
	labels := []string{}
	if len(intents) == 0 {
		return labels
	}

	seen := make(map[string]struct{})
	for _, in := range intents {
		for _, m := range ts.mappings {
			if m.IntentID != in.ID {
				continue
			}
			if _, dup := seen[m.TypeLabel]; dup {
				continue
			}
			seen[m.TypeLabel] = struct{}{}
			labels = append(labels, m.TypeLabel)
			if len(labels) == ts.maxTypes {
				return labels
			}
		}
	}
	return labels
}
