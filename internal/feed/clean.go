package feed

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	whitespace  = regexp.MustCompile(`\s+`)
)

// CleanText turns a fragment of feed HTML into plain text: entities are
// decoded, tags stripped, and runs of whitespace collapsed to single
// spaces. Cleaning already-clean plain text returns it unchanged.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = stripPolicy.Sanitize(s)
	// Sanitize re-escapes bare text, so decode once more.
	s = html.UnescapeString(s)
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Truncate caps s at max runes, appending "..." when anything was cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
