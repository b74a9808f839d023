package ai

import (
	"testing"
)

func TestParseCategorize(t *testing.T) {
	out, err := ParseCategorize(`{"folder": "Cooking", "confidence": 0.9, "reasoning": "food"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Folder != "Cooking" || out.Confidence != 0.9 {
		t.Errorf("got %+v", out)
	}
}

func TestParseCategorize_CodeFence(t *testing.T) {
	text := "```json\n{\"folder\": \"Work\", \"confidence\": 0.8, \"reasoning\": \"r\"}\n```"
	out, err := ParseCategorize(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Folder != "Work" {
		t.Errorf("Folder = %q", out.Folder)
	}
}

func TestParseCategorize_Invalid(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"not json", "sure, here's a folder for you"},
		{"missing folder", `{"confidence": 0.5}`},
		{"confidence out of range", `{"folder": "X", "confidence": 1.5}`},
		{"negative confidence", `{"folder": "X", "confidence": -0.1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCategorize(tc.text); err == nil {
				t.Errorf("expected error for %q", tc.text)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	out, err := ParseTags(`{"tags": ["go", "testing"]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Tags) != 2 {
		t.Errorf("Tags = %v", out.Tags)
	}

	if _, err := ParseTags(`{}`); err == nil {
		t.Error("expected error for missing tags")
	}
}

func TestParseSearch(t *testing.T) {
	out, err := ParseSearch(`{"results": [{"idea_id": "a", "relevance": 0.7}]}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Results) != 1 || out.Results[0].IdeaID != "a" {
		t.Errorf("Results = %+v", out.Results)
	}

	if _, err := ParseSearch(`{"results": [{"relevance": 0.7}]}`); err == nil {
		t.Error("expected error for hit missing idea_id")
	}
	if _, err := ParseSearch(`{"results": [{"idea_id": "a", "relevance": 2}]}`); err == nil {
		t.Error("expected error for relevance out of range")
	}
	if _, err := ParseSearch(`{}`); err == nil {
		t.Error("expected error for missing results")
	}
}

func TestStripCodeFence(t *testing.T) {
	if got := stripCodeFence("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
	if got := stripCodeFence("```json\n{}\n```"); got != "{}" {
		t.Errorf("got %q", got)
	}
	if got := stripCodeFence("```\n{}\n```"); got != "{}" {
		t.Errorf("got %q", got)
	}
}
