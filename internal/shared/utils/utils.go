package utils

import "strings"

// CountWords counts whitespace-separated words. Matches the client's
// word-count display, which splits on any whitespace run.
func CountWords(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Fields(content))
}

// SplitTags converts a comma-separated tag column into a clean list
func SplitTags(raw string) []string {
	if raw == "" {
		return []string{}
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// JoinTags is the inverse of SplitTags for persistence
func JoinTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, ", ")
}
