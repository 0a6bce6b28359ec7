package scrape

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseDetailTitleFallsBackToCaseNumber(t *testing.T) {
	detail := ParseDetail("<html><body><p>no heading</p></body></html>", "ARC-12345")
	if detail.Title != "ARC-12345" {
		t.Fatalf("got title %q", detail.Title)
	}
}

func TestParseDetailTitleFromH1(t *testing.T) {
	detail := ParseDetail(`<h1 class="page-title"> Cryogenic &amp; Sealed Valve </h1>`, "LEW-1")
	if detail.Title != "Cryogenic & Sealed Valve" {
		t.Fatalf("got title %q", detail.Title)
	}
}

func TestParseDetailBenefitsInOrder(t *testing.T) {
	html := `<div class="benefits"><ul><li>Reduces weight</li><li>Improves durability</li></ul></div>`
	detail := ParseDetail(html, "MSC-1")
	want := []string{"Reduces weight", "Improves durability"}
	if !reflect.DeepEqual(detail.Benefits, want) {
		t.Fatalf("got %v, want %v", detail.Benefits, want)
	}
}

func TestParseDetailBenefitsAnchorFallback(t *testing.T) {
	// No benefits block, only a heading followed by list items.
	html := `<h2>Benefits</h2><ul><li>Cheap</li><li>Fast</li></ul>`
	detail := ParseDetail(html, "MSC-2")
	want := []string{"Cheap", "Fast"}
	if !reflect.DeepEqual(detail.Benefits, want) {
		t.Fatalf("got %v, want %v", detail.Benefits, want)
	}
}

func TestParseDetailSectionsIndependent(t *testing.T) {
	// Benefits absent; images still extracted.
	html := `<img src="https://technology.nasa.gov/t2media/tops/img/LEW-1/front.jpg">`
	detail := ParseDetail(html, "LEW-1")
	if len(detail.Benefits) != 0 {
		t.Fatalf("expected no benefits, got %v", detail.Benefits)
	}
	if len(detail.Images) != 1 || !strings.HasSuffix(detail.Images[0], "front.jpg") {
		t.Fatalf("got images %v", detail.Images)
	}
}

func TestParseDetailImagesDeduped(t *testing.T) {
	u := "https://technology.nasa.gov/t2media/tops/img/ARC-9/fig1.png"
	html := `<img src="` + u + `"><a href="` + u + `">same</a>` +
		`<img src="https://technology.nasa.gov/t2media/tops/img/ARC-9/fig2.jpeg">`
	detail := ParseDetail(html, "ARC-9")
	if len(detail.Images) != 2 || detail.Images[0] != u {
		t.Fatalf("got %v", detail.Images)
	}
}

func TestParseDetailVideosCanonicalYouTube(t *testing.T) {
	html := `<a href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">v1</a>` +
		`<iframe src="https://www.youtube.com/embed/dQw4w9WgXcQ"></iframe>` +
		`<a href="https://youtu.be/abc123XYZ_-">v2</a>` +
		`<a href="https://example.com/clip.mp4">direct file, ignored</a>`
	detail := ParseDetail(html, "GSC-1")
	want := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://www.youtube.com/watch?v=abc123XYZ_-",
	}
	if !reflect.DeepEqual(detail.Videos, want) {
		t.Fatalf("got %v, want %v", detail.Videos, want)
	}
}

func TestParseDetailPatentNumbers(t *testing.T) {
	html := `<a href="#">10,123,456</a> <a href="#">9876543</a>` +
		`<a href="#">12345</a>` + // too short after comma strip
		`<a href="#">10,123,456</a>` // duplicate
	detail := ParseDetail(html, "LAR-3")
	want := []string{"10123456", "9876543"}
	if !reflect.DeepEqual(detail.PatentNumbers, want) {
		t.Fatalf("got %v, want %v", detail.PatentNumbers, want)
	}
}

func TestParseDetailRelatedCappedAndExcludesSelf(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<div class="related-tech">`)
	sb.WriteString(`<a href="/patent/TOP2-100">self is skipped</a>`)
	for i := 0; i < 12; i++ {
		sb.WriteString(`<a href="/patent/TOP2-` + strings.Repeat("1", i+1) + `">r</a>`)
	}
	sb.WriteString(`</div>`)
	detail := ParseDetail(sb.String(), "TOP2-100")
	if len(detail.RelatedTechnologies) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(detail.RelatedTechnologies))
	}
	for _, id := range detail.RelatedTechnologies {
		if id == "TOP2-100" {
			t.Fatal("related list contains the page's own case number")
		}
	}
}

func TestMergeDescriptionsPrefixDuplicate(t *testing.T) {
	abstract := "A device for X."
	techDesc := "A device for X. It works by Y."
	if got := MergeDescriptions(abstract, techDesc); got != techDesc {
		t.Fatalf("got %q, want tech description alone", got)
	}
}

func TestMergeDescriptionsDistinctJoined(t *testing.T) {
	got := MergeDescriptions("First part.", "Second part.")
	if got != "First part.\n\nSecond part." {
		t.Fatalf("got %q", got)
	}
}

func TestMergeDescriptionsEmptySides(t *testing.T) {
	if got := MergeDescriptions("", "only tech"); got != "only tech" {
		t.Fatalf("got %q", got)
	}
	if got := MergeDescriptions("only abstract", ""); got != "only abstract" {
		t.Fatalf("got %q", got)
	}
}

func TestParseDetailDescriptionFromBlocks(t *testing.T) {
	html := `<div class="abstract"><p>A device for X.</p></div>` +
		`<div class="tech-desc"><p>A device for X. It works by Y.</p></div>`
	detail := ParseDetail(html, "ARC-7")
	if detail.FullDescription != "A device for X. It works by Y." {
		t.Fatalf("got %q", detail.FullDescription)
	}
}

func TestParseDetailNeverFailsOnGarbage(t *testing.T) {
	detail := ParseDetail("<<<<>>>> \x00 not html at all <li>", "ZZZ-0")
	if detail.CaseNumber != "ZZZ-0" || detail.Title != "ZZZ-0" {
		t.Fatalf("got %+v", detail)
	}
}
