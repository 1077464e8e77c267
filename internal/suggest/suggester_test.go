package suggest

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/config"
)

func TestSuggest_EndToEnd(t *testing.T) {
	svc := New(testCatalog(t), config.SuggestConfig{MaxIntents: 3, MaxTypes: 8}, nil, nil, zap.NewNop())

	got := svc.Suggest(context.Background(), "pizza")
	if len(got.Intents) == 0 || got.Intents[0].Name != "Alimentação" {
		t.Fatalf("expected Alimentação intent, got %+v", got.Intents)
	}
	if len(got.Types) != 3 {
		t.Errorf("expected 3 type labels for Alimentação, got %v", got.Types)
	}
}

func TestSuggest_UnmatchedQuerySerializesEmpty(t *testing.T) {
	svc := New(testCatalog(t), config.SuggestConfig{MaxIntents: 3, MaxTypes: 8}, nil, nil, zap.NewNop())

	got := svc.Suggest(context.Background(), "xyzqwk")
	if got.Intents == nil || got.Types == nil {
		t.Fatal("suggestion slices must be non-nil")
	}
	if len(got.Intents) != 0 || len(got.Types) != 0 {
		t.Errorf("expected empty suggestion, got %+v", got)
	}
}

func TestSuggest_EmptyQuery(t *testing.T) {
	svc := New(testCatalog(t), config.SuggestConfig{MaxIntents: 3, MaxTypes: 8}, nil, nil, zap.NewNop())

	got := svc.Suggest(context.Background(), "")
	if len(got.Intents) != 0 || len(got.Types) != 0 {
		t.Errorf("expected empty suggestion for empty query, got %+v", got)
	}
}
