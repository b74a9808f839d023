package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/asismo/idea-management-mvp/internal/ai"
	"github.com/asismo/idea-management-mvp/internal/idea"
)

// maxExcerptChars bounds each idea excerpt embedded in the description prompt.
const maxExcerptChars = 200

// GenerateFolderDescription summarizes a folder from its ideas.
//
// The cache key is folder name + idea count: intentionally coarse, so the
// summary is regenerated only when the folder's idea count changes. Failures
// fall back to a templated sentence mentioning the count and name.
func (e *Engine) GenerateFolderDescription(ctx context.Context, folderName string, ideas []idea.Idea) string {
	cacheKey := ai.CacheKey("description", fmt.Sprintf("%s%d", folderName, len(ideas)))
	if cached, ok := e.cacheGet(cacheKey); ok {
		return cached.(string)
	}

	var sb strings.Builder
	for i, it := range ideas {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, idea.Excerpt(it.Content, maxExcerptChars))
	}

	prompt := ai.RenderPrompt(ai.PromptGenerateDescription, map[string]string{
		"folderName": folderName,
		"ideas":      sb.String(),
	})

	text, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn().Err(err).Str("folder", folderName).Msg("description generation failed, using fallback")
		return fallbackDescription(folderName, len(ideas))
	}

	description := strings.TrimSpace(text)
	if description == "" {
		return fallbackDescription(folderName, len(ideas))
	}

	e.cacheSet(cacheKey, description)
	return description
}

func fallbackDescription(folderName string, ideaCount int) string {
	return fmt.Sprintf("This folder contains %d ideas related to %s.", ideaCount, folderName)
}
