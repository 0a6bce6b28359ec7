package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

type scriptedCaller struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (s *scriptedCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func testDetail() catalog.PatentDetail {
	return catalog.PatentDetail{
		CaseNumber:      "LEW-TOPS-1",
		Title:           "Shape Memory Alloy Tire",
		FullDescription: "A non-pneumatic tire built from shape memory alloy.",
		Benefits:        []string{"No flats"},
		Applications:    []string{"Rovers"},
	}
}

func TestAnalyzeBusinessParsesReport(t *testing.T) {
	caller := &scriptedCaller{responses: []string{
		"```json\n" + `{"summary":"Strong fit for off-road vehicles.","market_potential":"Large","commercialization_paths":["EXCLUSIVE_LICENSE"],"risks":["Manufacturing cost"],"next_steps":["Contact the center"]}` + "\n```",
	}}
	a := NewAnalyzer(caller)
	rep, err := a.AnalyzeBusiness(context.Background(), testDetail())
	if err != nil {
		t.Fatal(err)
	}
	if rep.CaseNumber != "LEW-TOPS-1" {
		t.Fatalf("case number not stamped: %q", rep.CaseNumber)
	}
	if rep.Summary == "" || len(rep.CommercializationPaths) != 1 {
		t.Fatalf("got %+v", rep)
	}
	if !strings.Contains(caller.prompts[0], "Shape Memory Alloy Tire") {
		t.Fatal("prompt missing patent title")
	}
}

func TestAnalyzeBusinessRetriesOnInvalidJSON(t *testing.T) {
	caller := &scriptedCaller{responses: []string{
		"not json at all",
		`{"summary":"ok","market_potential":"niche","commercialization_paths":["STARTUP"],"risks":[],"next_steps":[]}`,
	}}
	a := NewAnalyzer(caller)
	rep, err := a.AnalyzeBusiness(context.Background(), testDetail())
	if err != nil {
		t.Fatal(err)
	}
	if caller.calls != 2 {
		t.Fatalf("expected a retry, got %d calls", caller.calls)
	}
	if rep.Summary != "ok" {
		t.Fatalf("got %+v", rep)
	}
	if !strings.Contains(caller.prompts[1], "not valid JSON") {
		t.Fatal("retry prompt missing feedback")
	}
}

func TestAnalyzeBusinessFailsAfterRetries(t *testing.T) {
	caller := &scriptedCaller{responses: []string{"x", "y", "z"}}
	a := NewAnalyzer(caller)
	if _, err := a.AnalyzeBusiness(context.Background(), testDetail()); err == nil {
		t.Fatal("expected failure after three bad responses")
	}
	if caller.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", caller.calls)
	}
}

func TestMatchProblemValidatesCandidateIDs(t *testing.T) {
	candidates := []catalog.Patent{
		{ID: "P1", Title: "Alpha", Description: "a"},
		{ID: "P2", Title: "Beta", Description: "b"},
	}
	caller := &scriptedCaller{responses: []string{
		`{"matches":[{"id":"P9","score":90,"rationale":"invented"}]}`,
		`{"matches":[{"id":"P2","score":80,"rationale":"fits"},{"id":"P1","score":95,"rationale":"best"}]}`,
	}}
	a := NewAnalyzer(caller)
	matches, err := a.MatchProblem(context.Background(), "need a durable wheel", candidates)
	if err != nil {
		t.Fatal(err)
	}
	if caller.calls != 2 {
		t.Fatalf("expected retry after unknown id, got %d calls", caller.calls)
	}
	if len(matches) != 2 || matches[0].ID != "P1" {
		t.Fatalf("expected score-sorted matches, got %+v", matches)
	}
	if matches[0].Title != "Alpha" {
		t.Fatalf("title not backfilled: %+v", matches[0])
	}
}

func TestMatchProblemRejectsEmptyInputs(t *testing.T) {
	a := NewAnalyzer(&scriptedCaller{})
	if _, err := a.MatchProblem(context.Background(), "  ", []catalog.Patent{{ID: "P1"}}); err == nil {
		t.Fatal("expected error for blank problem")
	}
	if _, err := a.MatchProblem(context.Background(), "problem", nil); err == nil {
		t.Fatal("expected error for no candidates")
	}
}

func TestStripCodeFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n```"
	if got := stripCodeFences(in); got != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
	if got := stripCodeFences(`{"a":1}`); got != `{"a":1}` {
		t.Fatalf("got %q", got)
	}
}
