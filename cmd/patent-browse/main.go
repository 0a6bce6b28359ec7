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

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
	"github.com/joelkehle/techtransfer-catalog/internal/telemetry"
	"github.com/joelkehle/techtransfer-catalog/internal/upstream"
)

func main() {
	baseURL := flag.String("base-url", upstream.DefaultBaseURL, "Portal base URL")
	op := flag.String("op", "browse", "Operation: browse | search | detail")
	category := flag.String("category", catalog.CategoryAll, "Category slug for browse (or 'all')")
	query := flag.String("query", "", "Search query")
	page := flag.Int("page", 1, "Search result page")
	caseNumber := flag.String("case", "", "Case number for detail")
	timeout := flag.Duration("timeout", 30*time.Second, "Per-request timeout")
	otlpEndpoint := flag.String("otlp", "", "OTLP trace endpoint (host:port), empty disables tracing")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *otlpEndpoint != "" {
		shutdown, err := telemetry.Setup(ctx, "patent-browse", *otlpEndpoint)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			_ = shutdown(flushCtx)
		}()
	}

	client := upstream.NewClient(upstream.ClientConfig{BaseURL: *baseURL, Timeout: *timeout})
	service := catalog.NewService(catalog.ServiceConfig{Fetcher: client})

	var result any
	var err error
	switch *op {
	case "browse":
		result, err = service.BrowseByCategory(ctx, *category)
	case "search":
		result, err = service.Search(ctx, *query, *page)
	case "detail":
		result, err = service.GetDetail(ctx, *caseNumber)
	default:
		log.Fatalf("unknown op %q", *op)
	}
	if err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatal(err)
	}
}
