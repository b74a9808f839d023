package engine

import (
	"context"
	"testing"

	"github.com/asismo/idea-management-mvp/internal/idea"
)

func testIdeas() []idea.Idea {
	return []idea.Idea{
		{ID: "a", Content: "monthly budget planning", Tags: []string{"budget", "finance"}},
		{ID: "b", Content: "quarterly budget report draft", Tags: []string{"work"}},
		{ID: "c", Content: "garden watering schedule", Tags: []string{"garden"}},
	}
}

func TestSearch_SimpleTagMatchOutranksContentOnly(t *testing.T) {
	e := newTestEngine(nil)

	got := e.Search(context.Background(), "budget report", testIdeas(), idea.ModeSimple)

	if len(got) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(got), got)
	}
	// Idea a: content match "budget" + tag match "budget" (weighted double).
	// Idea b: content matches "budget" and "report", no tag match.
	// (1 + 2*1)/6 = 0.5 vs (2 + 0)/6 ≈ 0.33.
	if got[0].IdeaID != "a" || got[1].IdeaID != "b" {
		t.Errorf("order = [%s %s], want [a b]", got[0].IdeaID, got[1].IdeaID)
	}
	if got[0].Relevance <= got[1].Relevance {
		t.Errorf("tagged idea should rank strictly above: %v vs %v", got[0].Relevance, got[1].Relevance)
	}
}

func TestSearch_SimpleExcludesZeroOverlap(t *testing.T) {
	e := newTestEngine(nil)

	got := e.Search(context.Background(), "budget report", testIdeas(), idea.ModeSimple)
	for _, r := range got {
		if r.IdeaID == "c" {
			t.Error("idea with zero overlap must be excluded")
		}
	}
}

func TestSearch_SimpleEmptyQuery(t *testing.T) {
	e := newTestEngine(nil)
	if got := e.Search(context.Background(), "   ", testIdeas(), idea.ModeSimple); len(got) != 0 {
		t.Errorf("empty query should return no results, got %+v", got)
	}
}

func TestSearch_SimpleScoreClampedToOne(t *testing.T) {
	e := newTestEngine(nil)
	ideas := []idea.Idea{
		{ID: "x", Content: "go go go", Tags: []string{"go", "golang", "going"}},
	}
	got := e.Search(context.Background(), "go", ideas, idea.ModeSimple)
	if len(got) != 1 {
		t.Fatalf("got %d results", len(got))
	}
	// 1 content match + 3 tag matches doubled = 7 over 3; clamped.
	if got[0].Relevance != 1 {
		t.Errorf("Relevance = %v, want clamped 1", got[0].Relevance)
	}
}

func TestSearch_AdvancedParsesRanking(t *testing.T) {
	gen := aiGeneratorReturning(`{"results": [{"idea_id": "b", "relevance": 0.9}, {"idea_id": "a", "relevance": 0.4}]}`)
	e := newTestEngine(gen)

	got := e.Search(context.Background(), "budget", testIdeas(), idea.ModeAdvanced)
	if len(got) != 2 || got[0].IdeaID != "b" || got[0].Relevance != 0.9 {
		t.Errorf("got %+v", got)
	}
}

func TestSearch_AdvancedFailureReturnsEmpty(t *testing.T) {
	e := newTestEngine(failingGenerator)

	got := e.Search(context.Background(), "budget", testIdeas(), idea.ModeAdvanced)
	if got == nil {
		t.Fatal("should return empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestSearch_AdvancedUnparseableReturnsEmpty(t *testing.T) {
	e := newTestEngine(aiGeneratorReturning("not json"))

	got := e.Search(context.Background(), "budget", testIdeas(), idea.ModeAdvanced)
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}
