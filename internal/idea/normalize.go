package idea

import (
	"strings"
	"unicode/utf8"
)

// NormalizeTag normalizes a tag:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single hyphens
func NormalizeTag(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// NormalizeTags normalizes a tag list and removes empties and duplicates,
// preserving first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// MergeTags returns the duplicate-free union of two tag sets.
// Order follows a then b; not significant for folder tags.
func MergeTags(a, b []string) []string {
	return NormalizeTags(append(append([]string{}, a...), b...))
}

// ClampTags enforces the [MinTags, MaxTags] bound on a generated tag list:
// pads with the filler tag below the minimum, truncates above the maximum.
func ClampTags(tags []string) []string {
	tags = NormalizeTags(tags)
	if len(tags) > MaxTags {
		tags = tags[:MaxTags]
	}
	for len(tags) < MinTags {
		if len(tags) > 0 && tags[len(tags)-1] == FillerTag {
			// Filler already present; avoid a duplicate
			tags = append(tags, "uncategorized")
			continue
		}
		tags = append(tags, FillerTag)
	}
	return tags
}

// Excerpt truncates text to approximately maxChars runes without splitting
// multi-byte characters. Used for prompt construction and display.
func Excerpt(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}

// ContentWords splits content into lowercase whitespace-delimited tokens.
func ContentWords(content string) []string {
	return strings.Fields(strings.ToLower(content))
}
