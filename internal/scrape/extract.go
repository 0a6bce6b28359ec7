package scrape

import "regexp"

// FindFirst returns the first capture group of pattern in text, or "" when
// the pattern does not match. An invalid pattern behaves like a miss:
// absence of a section in portal HTML is expected, not exceptional.
func FindFirst(text, pattern string) string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// FindAll returns every capture-group match of pattern in document order.
// Invalid or non-matching patterns yield an empty slice.
func FindAll(text, pattern string) []string {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	matches := re.FindAllStringSubmatch(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			out = append(out, m[1])
		}
	}
	return out
}

// WindowAfter returns the substring of text starting at the first
// case-insensitive occurrence of anchor, bounded to maxChars. It returns
// "" when the anchor is absent or blank. The anchor is located on the
// original text rather than a lowered copy: Unicode case mappings can
// change byte length, which would skew the offset.
func WindowAfter(text, anchor string, maxChars int) string {
	if anchor == "" || maxChars <= 0 {
		return ""
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(anchor))
	if err != nil {
		return ""
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	idx := loc[0]
	end := idx + maxChars
	if end > len(text) {
		end = len(text)
	}
	return text[idx:end]
}
