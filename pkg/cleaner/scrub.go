package cleaner

import (
	"regexp"
)

var (
	urlRegex   = regexp.MustCompile(`https?://[^\s<>"]+`)
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// RemoveURLs deletes http:// and https:// URLs from text.
// Surrounding whitespace is left alone.
func RemoveURLs(text string) string {
	if text == "" {
		return ""
	}
	return urlRegex.ReplaceAllString(text, "")
}

// RemoveEmails deletes email addresses from text.
// Surrounding whitespace is left alone.
func RemoveEmails(text string) string {
	if text == "" {
		return ""
	}
	return emailRegex.ReplaceAllString(text, "")
}

// NewURLScrubber returns a Cleaner that removes URLs.
func NewURLScrubber() *Func {
	return NewFunc("urls", RemoveURLs)
}

// NewEmailScrubber returns a Cleaner that removes email addresses.
func NewEmailScrubber() *Func {
	return NewFunc("emails", RemoveEmails)
}
