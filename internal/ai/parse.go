package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Typed response shapes. Responses are parsed fail-fast: anything that does
// not match the documented shape is a service failure and triggers the
// caller's fallback, never a crash.

// CategorizeResult is the structured categorization suggestion.
type CategorizeResult struct {
	Folder     string  `json:"folder"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// TagsResult is the structured tag suggestion.
type TagsResult struct {
	Tags []string `json:"tags"`
}

// SearchResult is the structured ranked search response.
type SearchResult struct {
	Results []SearchHit `json:"results"`
}

// SearchHit is one ranked entry in a search response.
type SearchHit struct {
	IdeaID    string  `json:"idea_id"`
	Relevance float64 `json:"relevance"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// ParseCategorize parses a categorization response.
func ParseCategorize(text string) (*CategorizeResult, error) {
	var out CategorizeResult
	if err := decodeStrict(text, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Folder) == "" {
		return nil, fmt.Errorf("categorize response missing folder")
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return nil, fmt.Errorf("categorize confidence %v out of range", out.Confidence)
	}
	return &out, nil
}

// ParseTags parses a tag generation response.
func ParseTags(text string) (*TagsResult, error) {
	var out TagsResult
	if err := decodeStrict(text, &out); err != nil {
		return nil, err
	}
	if out.Tags == nil {
		return nil, fmt.Errorf("tags response missing tags")
	}
	return &out, nil
}

// ParseSearch parses a ranked search response.
func ParseSearch(text string) (*SearchResult, error) {
	var out SearchResult
	if err := decodeStrict(text, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		return nil, fmt.Errorf("search response missing results")
	}
	for _, hit := range out.Results {
		if hit.IdeaID == "" {
			return nil, fmt.Errorf("search hit missing idea_id")
		}
		if hit.Relevance < 0 || hit.Relevance > 1 {
			return nil, fmt.Errorf("search relevance %v out of range", hit.Relevance)
		}
	}
	return &out, nil
}

// decodeStrict unmarshals a JSON response, tolerating markdown code fences
// that generation models commonly wrap around JSON.
func decodeStrict(text string, v any) error {
	text = stripCodeFence(text)
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
