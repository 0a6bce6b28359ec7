// Package scrape implements the best-effort text extraction layer used on
// the portal's semi-structured payloads. The detail pages are not served
// from any contractual schema, so everything here works on raw text with
// per-section fallbacks instead of assuming well-formed markup.
package scrape

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&",
		"&quot;", `"`,
		"&#039;", "'",
		"&nbsp;", " ",
	)
)

// Normalize strips markup tags, decodes the handful of entities the portal
// actually emits, collapses whitespace runs and trims. It is total and
// idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := tagPattern.ReplaceAllString(raw, " ")
	s = entityReplacer.Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
