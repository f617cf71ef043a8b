package cleaner

import (
	"strings"
)

// Normalize collapses every run of whitespace (spaces, tabs, newlines and
// other Unicode spaces) into a single ASCII space and trims both ends.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// NewWhitespaceNormalizer returns a Cleaner that normalizes whitespace.
func NewWhitespaceNormalizer() *Func {
	return NewFunc("whitespace", Normalize)
}
