package markdown

import (
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slug derives a URL-safe anchor id from heading text: lowercase,
// trimmed, everything but word characters, spaces and hyphens stripped,
// whitespace runs collapsed to a single hyphen, repeated hyphens
// collapsed.
//
// Identical heading text yields an identical slug; collisions between
// repeated headings are not de-duplicated, so the resulting id may not
// be unique within a document.
func Slug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return s
}
