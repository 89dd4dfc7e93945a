package convert

import "strings"

// BaseName extracts the download base name from an uploaded filename: the
// portion before the last dot, or the whole name when there is no usable
// dot. Blank names fall back to the operation's generic default
// (converted / extracted / merged).
func BaseName(name, fallback string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fallback
	}
	idx := strings.LastIndex(trimmed, ".")
	if idx > 0 {
		return trimmed[:idx]
	}
	return trimmed
}
