package validators

import "strings"

// SanitizeString trims surrounding whitespace and clamps free-text input to
// maxLen bytes. A maxLen of zero disables the clamp.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
