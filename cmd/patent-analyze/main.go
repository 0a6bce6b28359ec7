package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joelkehle/techtransfer-catalog/internal/analysis"
	"github.com/joelkehle/techtransfer-catalog/internal/bookmarks"
	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
	"github.com/joelkehle/techtransfer-catalog/internal/report"
	"github.com/joelkehle/techtransfer-catalog/internal/upstream"
)

func main() {
	baseURL := flag.String("base-url", upstream.DefaultBaseURL, "Portal base URL")
	caseNumber := flag.String("case", "", "Case number to analyze")
	problem := flag.String("problem", "", "Problem statement to match against a category's patents")
	category := flag.String("category", catalog.CategoryAll, "Candidate category for problem matching")
	dbPath := flag.String("db", "techtransfer.db", "Path to the local bookmarks/history database")
	pdfPath := flag.String("pdf", "", "Write the analysis report as PDF to this path")
	flag.Parse()

	if *caseNumber == "" && *problem == "" {
		log.Fatal("one of -case or -problem is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	caller, err := analysis.NewAnthropicCallerFromEnv()
	if err != nil {
		log.Fatal(err)
	}
	analyzer := analysis.NewAnalyzer(caller)

	client := upstream.NewClient(upstream.ClientConfig{BaseURL: *baseURL})
	service := catalog.NewService(catalog.ServiceConfig{Fetcher: client})

	store, err := bookmarks.NewStore(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	switch {
	case *caseNumber != "":
		runBusinessAnalysis(ctx, service, analyzer, store, *caseNumber, *pdfPath)
	default:
		runProblemMatch(ctx, service, analyzer, store, *problem, *category)
	}
}

func runBusinessAnalysis(ctx context.Context, service *catalog.Service, analyzer *analysis.Analyzer, store *bookmarks.Store, caseNumber, pdfPath string) {
	detail, err := service.GetDetail(ctx, caseNumber)
	if err != nil {
		log.Fatal(err)
	}
	rep, err := analyzer.AnalyzeBusiness(ctx, detail)
	if err != nil {
		log.Fatal(err)
	}

	blob, _ := json.Marshal(rep)
	if err := store.AppendHistory(bookmarks.HistoryEntry{
		Kind:       bookmarks.HistoryBusinessAnalysis,
		CaseNumber: caseNumber,
		Content:    string(blob),
	}); err != nil {
		log.Printf("history append failed: %v", err)
	}

	markdown := report.BuildMarkdown(detail, rep, time.Now())
	if pdfPath != "" {
		pdf, err := report.NewChromiumPDFRenderer().Render(ctx, markdown)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %s", pdfPath)
		return
	}
	os.Stdout.WriteString(markdown)
}

func runProblemMatch(ctx context.Context, service *catalog.Service, analyzer *analysis.Analyzer, store *bookmarks.Store, problem, category string) {
	candidates, err := service.BrowseByCategory(ctx, category)
	if err != nil {
		log.Fatal(err)
	}
	matches, err := analyzer.MatchProblem(ctx, problem, candidates)
	if err != nil {
		log.Fatal(err)
	}

	blob, _ := json.Marshal(matches)
	if err := store.AppendHistory(bookmarks.HistoryEntry{
		Kind:    bookmarks.HistoryProblemMatch,
		Content: string(blob),
	}); err != nil {
		log.Printf("history append failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(matches); err != nil {
		log.Fatal(err)
	}
}
