package utils

import (
	"strings"
	"unicode"
)

// Slugify lowercases a title and collapses everything that is not a letter or
// digit into single hyphens, producing a URL-safe path segment.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
