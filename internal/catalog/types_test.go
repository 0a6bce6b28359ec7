package catalog

import "testing"

func TestPatentOfficeURL(t *testing.T) {
	p := Patent{PatentNumber: "9573422"}
	if got := p.PatentOfficeURL(); got != "https://patents.google.com/patent/US9573422" {
		t.Fatalf("got %q", got)
	}
	if got := (Patent{}).PatentOfficeURL(); got != "" {
		t.Fatalf("expected empty for no patent number, got %q", got)
	}
}
