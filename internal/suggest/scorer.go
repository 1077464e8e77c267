package suggest

import (
	"sort"
	"strings"

	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/text"
)

type scoredEntry struct {
	intentID int
	keyword  string // normalized once at build time
	weight   int
}

// Scorer maps free-text queries to ranked intents by scanning the keyword
// table. Entries stay in table order: for equal scores, the intent whose
// keyword matched earlier in the table ranks first, and that ordering is part
// of the contract, not an accident of map iteration.
type Scorer struct {
	entries    []scoredEntry
	intents    map[int]models.SearchIntent
	maxIntents int
}

func NewScorer(repo catalog.Repository, maxIntents int) *Scorer {
	intents := make(map[int]models.SearchIntent)
	for _, in := range repo.Intents() {
		if in.Active {
			intents[in.ID] = in
		}
	}

	keywords := repo.Keywords()
	entries := make([]scoredEntry, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := intents[kw.IntentID]; !ok {
			continue
		}
		entries = append(entries, scoredEntry{
			intentID: kw.IntentID,
			keyword:  text.Normalize(kw.Keyword),
			weight:   kw.Weight,
		})
	}

	return &Scorer{
		entries:    entries,
		intents:    intents,
		maxIntents: maxIntents,
	}
}

// ScoreIntents accumulates keyword weights per intent for every keyword
// contained in the normalized query, then returns up to maxIntents intents by
// descending score. Matching is substring containment: "pizzaria" matches
// "pizza". False positives inside unrelated words are accepted; this is a
// heuristic suggester, not a classifier. An empty or whitespace query
// short-circuits to nil without scanning.
func (s *Scorer) ScoreIntents(query string) []models.ScoredIntent {
	q := text.Normalize(query)
	if strings.TrimSpace(q) == "" {
		return nil
	}

	scores := make(map[int]int)
	var firstSeen []int
	for _, e := range s.entries {
		if !strings.Contains(q, e.keyword) {
			continue
		}
		if _, seen := scores[e.intentID]; !seen {
			firstSeen = append(firstSeen, e.intentID)
		}
		scores[e.intentID] += e.weight
	}

	if len(firstSeen) == 0 {
		return nil
	}

	// Stable sort over first-match order keeps ties deterministic.
	sort.SliceStable(firstSeen, func(i, j int) bool {
		return scores[firstSeen[i]] > scores[firstSeen[j]]
	})

	n := len(firstSeen)
	if n > s.maxIntents {
		n = s.maxIntents
	}

	ranked := make([]models.ScoredIntent, 0, n)
	for _, id := range firstSeen[:n] {
		ranked = append(ranked, models.ScoredIntent{
			Intent: s.intents[id],
			Score:  scores[id],
		})
	}
	return ranked
}
