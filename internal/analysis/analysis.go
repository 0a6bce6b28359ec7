package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
)

const (
	maxDetailChars      = 12000
	maxCandidates       = 40
	candidateDescChars  = 300
	maxMatchesRequested = 5
)

// BusinessReport is the structured commercialization assessment for one
// patent detail record.
type BusinessReport struct {
	CaseNumber             string   `json:"case_number"`
	Summary                string   `json:"summary"`
	MarketPotential        string   `json:"market_potential"`
	CommercializationPaths []string `json:"commercialization_paths"`
	Risks                  []string `json:"risks"`
	NextSteps              []string `json:"next_steps"`
}

// ProblemMatch ranks one candidate patent against a problem statement.
type ProblemMatch struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

type Analyzer struct {
	caller LLMCaller
}

func NewAnalyzer(caller LLMCaller) *Analyzer {
	return &Analyzer{caller: caller}
}

// AnalyzeBusiness produces a commercialization report for one detail
// record.
func (a *Analyzer) AnalyzeBusiness(ctx context.Context, detail catalog.PatentDetail) (BusinessReport, error) {
	var report BusinessReport
	prompt := buildBusinessPrompt(detail)
	err := generate(ctx, a.caller, "business-analysis", prompt, &report, func() error {
		if strings.TrimSpace(report.Summary) == "" {
			return errors.New("summary is empty")
		}
		if strings.TrimSpace(report.MarketPotential) == "" {
			return errors.New("market_potential is empty")
		}
		if len(report.CommercializationPaths) == 0 {
			return errors.New("commercialization_paths is empty")
		}
		return nil
	})
	if err != nil {
		return BusinessReport{}, err
	}
	report.CaseNumber = detail.CaseNumber
	return report, nil
}

type matchResponse struct {
	Matches []ProblemMatch `json:"matches"`
}

// MatchProblem asks the model to rank candidate patents against a
// free-text problem statement. Matches naming unknown candidate ids are
// rejected at validation so the model cannot invent listings.
func (a *Analyzer) MatchProblem(ctx context.Context, problem string, candidates []catalog.Patent) ([]ProblemMatch, error) {
	problem = strings.TrimSpace(problem)
	if problem == "" {
		return nil, errors.New("problem statement is empty")
	}
	if len(candidates) == 0 {
		return nil, errors.New("no candidate patents to match against")
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	known := make(map[string]string, len(candidates))
	for _, c := range candidates {
		known[c.ID] = c.Title
	}

	var resp matchResponse
	prompt := buildMatchPrompt(problem, candidates)
	err := generate(ctx, a.caller, "problem-match", prompt, &resp, func() error {
		if len(resp.Matches) == 0 {
			return errors.New("matches is empty")
		}
		for _, m := range resp.Matches {
			if _, ok := known[m.ID]; !ok {
				return fmt.Errorf("unknown candidate id %q", m.ID)
			}
			if m.Score < 0 || m.Score > 100 {
				return fmt.Errorf("score %d out of range for id %q", m.Score, m.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	matches := resp.Matches
	for i := range matches {
		matches[i].Title = known[matches[i].ID]
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > maxMatchesRequested {
		matches = matches[:maxMatchesRequested]
	}
	return matches, nil
}

func buildBusinessPrompt(detail catalog.PatentDetail) string {
	var sb strings.Builder
	sb.WriteString("Assess the commercial potential of this government technology-transfer patent.\n\n")
	fmt.Fprintf(&sb, "Case number: %s\nTitle: %s\n\nDescription:\n%s\n", detail.CaseNumber, detail.Title, truncate(detail.FullDescription, maxDetailChars))
	writeList(&sb, "Benefits", detail.Benefits)
	writeList(&sb, "Applications", detail.Applications)
	sb.WriteString("\nReturn JSON with this schema:\n")
	sb.WriteString(`{"summary": string, "market_potential": string, "commercialization_paths": [string], "risks": [string], "next_steps": [string]}`)
	return sb.String()
}

func buildMatchPrompt(problem string, candidates []catalog.Patent) string {
	var sb strings.Builder
	sb.WriteString("A user described a problem. Rank which of the candidate patents below could address it.\n\n")
	fmt.Fprintf(&sb, "Problem:\n%s\n\nCandidates:\n", problem)
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- id=%s title=%q description=%q\n", c.ID, c.Title, truncate(c.Description, candidateDescChars))
	}
	fmt.Fprintf(&sb, "\nReturn JSON with this schema (at most %d matches, ids drawn only from the candidates):\n", maxMatchesRequested)
	sb.WriteString(`{"matches": [{"id": string, "score": integer 0-100, "rationale": string}]}`)
	return sb.String()
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
