package ai

import "strings"

// Prompt templates. Placeholders are substituted with RenderPrompt before
// the call; responses must match the documented shapes in parse.go.

const PromptCategorize = `You are an AI assistant that categorizes ideas into folders.
Given the following idea content and existing folder names, suggest which folder this idea belongs to.
If none of the existing folders fit well, suggest a new folder name.

Idea: {idea}
Existing folders: {folders}

Respond in JSON format:
{
  "folder": "folder name",
  "confidence": 0.95,
  "reasoning": "brief explanation"
}`

const PromptGenerateTags = `You are an AI assistant that extracts relevant tags from ideas.
Extract 2-5 relevant tags from the following idea content.
Tags should be lowercase, single words or hyphenated phrases.

Idea: {idea}

Respond in JSON format:
{
  "tags": ["tag1", "tag2", "tag3"]
}`

const PromptGenerateDescription = `You are an AI assistant that summarizes folder contents.
Given the following ideas in a folder, generate a 2-3 paragraph description of the folder's purpose and themes.
Highlight relationships between ideas and mention key tags.

Folder name: {folderName}
Ideas: {ideas}

Respond with only the description text, no JSON.`

const PromptSearch = `You are an AI assistant that helps users find relevant ideas.
Given the following query and list of ideas, find and return the most relevant ideas.

Query: {query}
Ideas: {ideas}

Respond in JSON format:
{
  "results": [
    {
      "idea_id": "id",
      "relevance": 0.95,
      "reasoning": "why this idea is relevant"
    }
  ]
}`

// RenderPrompt substitutes {name} placeholders in a template.
func RenderPrompt(template string, vars map[string]string) string {
	out := template
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}
