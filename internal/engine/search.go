package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/idea"
)

// Ranked is one search result: an idea id with a 0..1 relevance score.
type Ranked struct {
	IdeaID    string  `json:"idea_id"`
	Relevance float64 `json:"relevance"`
}

// Search ranks ideas against a query, ordered by descending relevance.
//
// Simple mode scores word overlap between query and content/tags:
// score = (contentMatches + 2*tagMatches) / (queryWords * 3), clamped to 1;
// zero-score ideas are dropped. Deterministic, no I/O.
// Advanced mode delegates the full idea set to the AI service; on any
// failure it returns an empty result rather than an error.
func (e *Engine) Search(ctx context.Context, query string, ideas []idea.Idea, mode idea.Mode) []Ranked {
	if mode != idea.ModeAdvanced {
		return searchSimple(query, ideas)
	}

	var sb strings.Builder
	for i, it := range ideas {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "ID: %s\nContent: %s\nTags: %s", it.ID, it.Content, strings.Join(it.Tags, ", "))
	}

	prompt := ai.RenderPrompt(ai.PromptSearch, map[string]string{
		"query": query,
		"ideas": sb.String(),
	})

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn().Err(err).Msg("search generation failed, returning no results")
		return []Ranked{}
	}

	parsed, err := ai.ParseSearch(text)
	if err != nil {
		e.log.Warn().Err(err).Msg("search response unparseable, returning no results")
		return []Ranked{}
	}

	out := make([]Ranked, 0, len(parsed.Results))
	for _, hit := range parsed.Results {
		out = append(out, Ranked{IdeaID: hit.IdeaID, Relevance: hit.Relevance})
	}
	return out
}

func searchSimple(query string, ideas []idea.Idea) []Ranked {
	queryWords := idea.ContentWords(query)
	if len(queryWords) == 0 {
		return []Ranked{}
	}

	out := make([]Ranked, 0, len(ideas))
	for _, it := range ideas {
		contentWords := idea.ContentWords(it.Content)

		// A query word counts once if any content token contains it or is
		// contained by it (containment either direction).
		contentMatches := 0
		for _, qw := range queryWords {
			for _, cw := range contentWords {
				if strings.Contains(cw, qw) || strings.Contains(qw, cw) {
					contentMatches++
					break
				}
			}
		}

		// A tag counts once if it contains any query word.
		tagMatches := 0
		for _, tag := range it.Tags {
			lower := strings.ToLower(tag)
			for _, qw := range queryWords {
				if strings.Contains(lower, qw) {
					tagMatches++
					break
				}
			}
		}

		relevance := float64(contentMatches+tagMatches*2) / float64(len(queryWords)*3)
		if relevance > 1 {
			relevance = 1
		}
		if relevance > 0 {
			out = append(out, Ranked{IdeaID: it.ID, Relevance: relevance})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Relevance > out[j].Relevance
	})
	return out
}
