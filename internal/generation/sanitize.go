package generation

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptStyleRe = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// StripTags removes script and style elements including their contents,
// then strips all remaining markup and decodes HTML entities.
func StripTags(s string) string {
	s = scriptStyleRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// SanitizeText reduces a string to a single line of plain text: markup is
// stripped and all whitespace runs, including line breaks, collapse to one
// space. Used for FAQ titles.
func SanitizeText(s string) string {
	s = StripTags(s)
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeMultiline strips markup but preserves line breaks, collapsing only
// horizontal whitespace runs. Used for FAQ bodies.
func SanitizeMultiline(s string) string {
	s = StripTags(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
