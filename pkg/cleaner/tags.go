package cleaner

import (
	"regexp"
)

var (
	// tagRegex matches a single markup tag lexically. It has no notion of
	// nesting, and a '>' inside an attribute value ends the match early.
	tagRegex = regexp.MustCompile(`<.*?>`)

	// formatRules rewrite whitelisted spans to markdown. Each tag has its
	// own pattern so a span only closes on its own closing tag.
	formatRules = []formatRule{
		newFormatRule("b", "**"),
		newFormatRule("strong", "**"),
		newFormatRule("i", "*"),
		newFormatRule("em", "*"),
	}
)

type formatRule struct {
	re   *regexp.Regexp
	repl string
}

func newFormatRule(tag, marker string) formatRule {
	return formatRule{
		re:   regexp.MustCompile(`(?is)<` + tag + `(?:\s[^>]*)?>(.*?)</` + tag + `\s*>`),
		repl: marker + "${1}" + marker,
	}
}

// StripTags removes markup tags from text.
//
// When preserveFormatting is true, bold (<b>, <strong>) and italic (<i>,
// <em>) spans are first rewritten to **text** and *text*; every other tag
// is then removed. The whitelist is fixed, and a span is only rewritten
// when its closing tag matches the opening one: "<b>x</strong>" becomes
// "x".
//
// Removal is lexical, not parsed: malformed or nested markup can leave
// partial artifacts behind.
func StripTags(text string, preserveFormatting bool) string {
	if text == "" {
		return ""
	}
	if preserveFormatting {
		for _, r := range formatRules {
			text = r.re.ReplaceAllString(text, r.repl)
		}
	}
	return tagRegex.ReplaceAllString(text, "")
}

// TagStripper is a Cleaner that removes markup tags.
type TagStripper struct {
	preserveFormatting bool
}

// NewTagStripper creates a tag stripping cleaner.
func NewTagStripper(preserveFormatting bool) *TagStripper {
	return &TagStripper{preserveFormatting: preserveFormatting}
}

// Clean removes tags from text.
func (s *TagStripper) Clean(text string) (string, error) {
	return StripTags(text, s.preserveFormatting), nil
}

// Name returns the cleaner type.
func (s *TagStripper) Name() string {
	if s.preserveFormatting {
		return "strip(preserve)"
	}
	return "strip"
}
