package scrape

import (
	"strings"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

const (
	benefitsAnchorWindow     = 4000
	applicationsAnchorWindow = 5000
	relatedAnchorWindow      = 3000
	maxRelatedTechnologies   = 10
	descriptionPrefixProbe   = 50
)

const (
	titlePattern        = `(?is)<h1[^>]*>(.*?)</h1>`
	abstractPattern     = `(?is)<div[^>]*class="[^"]*\babstract\b[^"]*"[^>]*>(.*?)</div>`
	techDescPattern     = `(?is)<div[^>]*class="[^"]*\btech(?:nology)?[-_]?desc[^"]*"[^>]*>(.*?)</div>`
	benefitsPattern     = `(?is)<(?:div|section)[^>]*(?:id|class)="[^"]*benefit[^"]*"[^>]*>(.*?)</(?:div|section)>`
	applicationsPattern = `(?is)<(?:div|section)[^>]*(?:id|class)="[^"]*application[^"]*"[^>]*>(.*?)</(?:div|section)>`
	listItemPattern     = `(?is)<li[^>]*>(.*?)</li>`
	imagePattern        = `(?i)(https?://[^"'\s>]*?/t2media/[^"'\s>]+?\.(?:png|jpe?g|gif|webp))`
	youtubeIDPattern    = `(?i)(?:youtube\.com/(?:watch\?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{6,12})`
	patentAnchorPattern = `(?is)<a[^>]*>\s*(?:US\s*)?([0-9][0-9,]{4,12})\s*</a>`
	relatedLinkPattern  = `(?i)href="[^"]*/patent/([A-Za-z0-9][A-Za-z0-9-]*)"`
)

// ParseDetail scrapes one patent detail page into a PatentDetail. Every
// section is extracted independently with a safe empty default, so a page
// missing benefits still yields its images, and vice versa. It never fails.
func ParseDetail(html, caseNumber string) catalog.PatentDetail {
	detail := catalog.PatentDetail{CaseNumber: caseNumber}

	detail.Title = Normalize(FindFirst(html, titlePattern))
	if detail.Title == "" {
		detail.Title = caseNumber
	}

	abstract := Normalize(FindFirst(html, abstractPattern))
	techDesc := Normalize(FindFirst(html, techDescPattern))
	detail.FullDescription = MergeDescriptions(abstract, techDesc)

	detail.Benefits = extractListSection(html, benefitsPattern, "Benefits", benefitsAnchorWindow)
	detail.Applications = extractListSection(html, applicationsPattern, "Applications", applicationsAnchorWindow)
	detail.Images = dedupe(FindAll(html, imagePattern))
	detail.Videos = extractVideos(html)
	detail.PatentNumbers = extractPatentNumbers(html)
	detail.RelatedTechnologies = extractRelated(html, caseNumber)
	return detail
}

// MergeDescriptions joins the abstract and technical-description blocks
// with a blank line, collapsing to a single block when one is a
// prefix-duplicate of the other (probed on the first 50 characters).
func MergeDescriptions(abstract, techDesc string) string {
	switch {
	case abstract == "":
		return techDesc
	case techDesc == "":
		return abstract
	}
	if strings.HasPrefix(techDesc, probe(abstract)) {
		return techDesc
	}
	if strings.HasPrefix(abstract, probe(techDesc)) {
		return abstract
	}
	return abstract + "\n\n" + techDesc
}

func probe(s string) string {
	if len(s) > descriptionPrefixProbe {
		return s[:descriptionPrefixProbe]
	}
	return s
}

// extractListSection pulls the <li> items out of a named section block,
// falling back to a bounded window after the section's heading text when
// no block-level match exists.
func extractListSection(html, sectionPattern, anchor string, window int) []string {
	block := FindFirst(html, sectionPattern)
	if block == "" {
		block = WindowAfter(html, anchor, window)
	}
	if block == "" {
		return nil
	}
	var items []string
	for _, raw := range FindAll(block, listItemPattern) {
		if item := Normalize(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// extractVideos recognizes only YouTube links (watch, embed, short and
// youtu.be forms) and canonicalizes one watch URL per distinct video id.
func extractVideos(html string) []string {
	var urls []string
	for _, id := range dedupe(FindAll(html, youtubeIDPattern)) {
		urls = append(urls, "https://www.youtube.com/watch?v="+id)
	}
	return urls
}

func extractPatentNumbers(html string) []string {
	var numbers []string
	for _, raw := range FindAll(html, patentAnchorPattern) {
		n := strings.ReplaceAll(raw, ",", "")
		if len(n) < 6 || len(n) > 10 {
			continue
		}
		numbers = append(numbers, n)
	}
	return dedupe(numbers)
}

func extractRelated(html, caseNumber string) []string {
	block := FindFirst(html, `(?is)<(?:div|section)[^>]*(?:id|class)="[^"]*related[^"]*"[^>]*>(.*?)</(?:div|section)>`)
	if block == "" {
		block = WindowAfter(html, "Similar Results", relatedAnchorWindow)
	}
	if block == "" {
		return nil
	}
	var related []string
	for _, id := range dedupe(FindAll(block, relatedLinkPattern)) {
		if id == caseNumber {
			continue
		}
		related = append(related, id)
		if len(related) == maxRelatedTechnologies {
			break
		}
	}
	return related
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
