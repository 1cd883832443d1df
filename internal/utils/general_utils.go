package utils

import (
	"mgMessenger/internal/enums"
	"strings"
)

// EventPreview is the short text shown in notifications for a message.
func EventPreview(text, fileURL string) string {
	preview := strings.TrimSpace(text)
	if preview == "" && fileURL != "" {
		preview = enums.PREVIEW_FILE
	}
	if preview == "" {
		return enums.PREVIEW_MESSAGE
	}
	return preview
}

// ChatPreview is EventPreview from the point of view of a chat list, where
// the reader's own messages are prefixed.
func ChatPreview(text, fileURL string, mine bool) string {
	base := strings.TrimSpace(text)
	if base == "" && fileURL != "" {
		base = enums.PREVIEW_FILE
	}
	if mine {
		if base == "" {
			return enums.PREVIEW_YOU + ": " + strings.ToLower(enums.PREVIEW_MESSAGE)
		}
		return enums.PREVIEW_YOU + ": " + base
	}
	if base == "" {
		return enums.PREVIEW_MESSAGE
	}
	return base
}

func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
