package scrape

import "testing"

func TestNormalizeStripsTagsAndEntities(t *testing.T) {
	in := `<p>Fiber&nbsp;optic &amp; laser &quot;sensors&quot; for John&#039;s lab</p>`
	want := `Fiber optic & laser "sensors" for John's lab`
	if got := Normalize(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	if got := Normalize("  a \n\t b   c  "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text",
		`<div class="x"><b>bold</b> and <i>italic</i></div>`,
		"lots   of\n\nspace",
		"&quot;quoted&quot; &nbsp; text",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestNormalizeTotalOnEmptyAndMarkupOnly(t *testing.T) {
	if got := Normalize("<br/><hr>"); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
