package engine

import (
	"context"
	"strings"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/idea"
)

// Categorization confidence levels for the simple heuristic.
const (
	matchedConfidence = 0.7
	defaultConfidence = 0.5
)

// maxKeywordTokens bounds how much of the content the simple heuristic reads.
const maxKeywordTokens = 10

// Categorization is the suggested folder for an idea.
type Categorization struct {
	Folder     string  `json:"folder"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Categorize decides which folder content belongs to.
//
// Simple mode matches the first 10 lowercase content tokens against existing
// folder names by substring containment; deterministic, no I/O, never fails.
// Advanced mode delegates to the AI service, memoized by a content-prefix
// cache key; any failure falls back to the fallback folder at confidence 0.5.
func (e *Engine) Categorize(ctx context.Context, content string, existingFolders []string, mode idea.Mode) Categorization {
	if mode != idea.ModeAdvanced {
		return categorizeSimple(content, existingFolders)
	}

	cacheKey := ai.CacheKey("categorize", content)
	if cached, ok := e.cacheGet(cacheKey); ok {
		return cached.(Categorization)
	}

	prompt := ai.RenderPrompt(ai.PromptCategorize, map[string]string{
		"idea":    content,
		"folders": strings.Join(existingFolders, ", "),
	})

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn().Err(err).Msg("categorize generation failed, using fallback")
		return fallbackCategorization()
	}

	parsed, err := ai.ParseCategorize(text)
	if err != nil {
		e.log.Warn().Err(err).Msg("categorize response unparseable, using fallback")
		return fallbackCategorization()
	}

	result := Categorization{
		Folder:     parsed.Folder,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}
	e.cacheSet(cacheKey, result)
	return result
}

func categorizeSimple(content string, existingFolders []string) Categorization {
	keywords := idea.ContentWords(content)
	if len(keywords) > maxKeywordTokens {
		keywords = keywords[:maxKeywordTokens]
	}

	for _, folder := range existingFolders {
		lower := strings.ToLower(folder)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return Categorization{
					Folder:     folder,
					Confidence: matchedConfidence,
					Reasoning:  "Matched by keywords",
				}
			}
		}
	}

	return Categorization{
		Folder:     idea.FallbackFolderName,
		Confidence: defaultConfidence,
		Reasoning:  "Default category",
	}
}

func fallbackCategorization() Categorization {
	return Categorization{
		Folder:     idea.FallbackFolderName,
		Confidence: defaultConfidence,
		Reasoning:  "Error in categorization",
	}
}
