package engine

import (
	"context"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/idea"
)

// fallbackTags is returned when generation or parsing fails.
func fallbackTags() []string {
	return []string{"general", "uncategorized"}
}

// GenerateTags extracts tags for content. Only the delegated path exists;
// there is no simple-mode heuristic for tagging. Output length is clamped
// into [MinTags, MaxTags] regardless of what the service returns; failures
// fall back to ["general", "uncategorized"].
func (e *Engine) GenerateTags(ctx context.Context, content string) []string {
	cacheKey := ai.CacheKey("tags", content)
	if cached, ok := e.cacheGet(cacheKey); ok {
		return cached.([]string)
	}

	prompt := ai.RenderPrompt(ai.PromptGenerateTags, map[string]string{
		"idea": content,
	})

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn().Err(err).Msg("tag generation failed, using fallback")
		return fallbackTags()
	}

	parsed, err := ai.ParseTags(text)
	if err != nil {
		e.log.Warn().Err(err).Msg("tags response unparseable, using fallback")
		return fallbackTags()
	}

	tags := idea.ClampTags(parsed.Tags)
	e.cacheSet(cacheKey, tags)
	return tags
}
