package cleaner

import (
	"golang.org/x/net/html"
)

// Decode converts named and numeric character references (&lt;, &#39;,
// &amp;, ...) into their literal characters using the full HTML5 entity
// table. Unrecognized references are left as they are, so decoding text
// that contains no references is a no-op.
func Decode(text string) string {
	if text == "" {
		return ""
	}
	return html.UnescapeString(text)
}

// EntityDecoder is a Cleaner that decodes character references.
type EntityDecoder struct{}

// NewEntityDecoder creates an entity decoding cleaner.
func NewEntityDecoder() *EntityDecoder {
	return &EntityDecoder{}
}

// Clean decodes character references in text.
func (d *EntityDecoder) Clean(text string) (string, error) {
	return Decode(text), nil
}

// Name returns the cleaner type.
func (d *EntityDecoder) Name() string {
	return "decode"
}
