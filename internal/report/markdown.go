// Package report turns a business analysis into a shareable document:
// GFM markdown, and optionally a Chromium-rendered PDF.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/joelkehle/techtransfer-catalog/internal/analysis"
	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

const disclaimer = "This is a preliminary automated assessment based on the public listing, not a valuation or investment recommendation."

// BuildMarkdown renders one analysis into GFM markdown.
func BuildMarkdown(detail catalog.PatentDetail, rep analysis.BusinessReport, generatedAt time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Commercialization Assessment: %s\n\n", detail.Title)
	fmt.Fprintf(&sb, "**Case:** %s  \n**Generated:** %s\n\n", detail.CaseNumber, generatedAt.Format("January 2, 2006"))
	fmt.Fprintf(&sb, "## Summary\n\n%s\n\n", rep.Summary)
	fmt.Fprintf(&sb, "## Market Potential\n\n%s\n\n", rep.MarketPotential)
	writeSection(&sb, "Commercialization Paths", rep.CommercializationPaths)
	writeSection(&sb, "Risks", rep.Risks)
	writeSection(&sb, "Next Steps", rep.NextSteps)
	if len(detail.PatentNumbers) > 0 {
		fmt.Fprintf(&sb, "## Issued Patents\n\n")
		for _, n := range detail.PatentNumbers {
			fmt.Fprintf(&sb, "- US %s\n", n)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "---\n\n*%s*\n", disclaimer)
	return sb.String()
}

func writeSection(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}
