package report

import (
	"strings"
	"testing"
	"time"

	"github.com/joelkehle/techtransfer-catalog/internal/analysis"
	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

func TestBuildMarkdownSections(t *testing.T) {
	detail := catalog.PatentDetail{
		CaseNumber:    "LEW-TOPS-1",
		Title:         "Shape Memory Alloy Tire",
		PatentNumbers: []string{"9573422"},
	}
	rep := analysis.BusinessReport{
		Summary:                "Promising.",
		MarketPotential:        "Large off-road market.",
		CommercializationPaths: []string{"Exclusive license"},
		Risks:                  []string{"Cost"},
		NextSteps:              []string{"Contact center"},
	}
	md := BuildMarkdown(detail, rep, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	for _, want := range []string{
		"# Commercialization Assessment: Shape Memory Alloy Tire",
		"**Case:** LEW-TOPS-1",
		"## Summary",
		"## Market Potential",
		"## Commercialization Paths",
		"- Exclusive license",
		"## Issued Patents",
		"- US 9573422",
		"March 1, 2026",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestBuildMarkdownOmitsEmptySections(t *testing.T) {
	md := BuildMarkdown(catalog.PatentDetail{CaseNumber: "C", Title: "T"}, analysis.BusinessReport{Summary: "s", MarketPotential: "m"}, time.Now())
	if strings.Contains(md, "## Risks") || strings.Contains(md, "## Issued Patents") {
		t.Fatalf("empty sections should be omitted:\n%s", md)
	}
}

func TestBuildHTMLConvertsMarkdown(t *testing.T) {
	html, err := buildHTML("# Heading\n\n- item one\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<li>item one</li>") {
		t.Fatalf("unexpected html:\n%s", html)
	}
}
