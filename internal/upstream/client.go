// Package upstream talks to the three surfaces of the NASA technology
// transfer portal (positional search API, Elasticsearch-shaped category
// API, raw HTML detail pages) and adapts each into the normalized
// catalog.Patent model at the boundary.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
	"github.com/joelkehle/techtransfer-catalog/internal/scrape"
)

const (
	DefaultBaseURL = "https://technology.nasa.gov"

	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 8 << 20
)

type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches raw payloads from the portal. It holds no mutable state
// beyond its HTTP client and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tracer  trace.Tracer
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    cfg.HTTPClient,
		tracer:  otel.Tracer("techtransfer-catalog/upstream"),
	}
}

// Search queries the positional search API for one result page.
func (c *Client) Search(ctx context.Context, query string, page int) ([]catalog.Patent, error) {
	path := fmt.Sprintf("/api/api/patent/%s?page=%d", url.PathEscape(query), page)
	body, err := c.get(ctx, "upstream.search", path)
	if err != nil {
		return nil, err
	}
	return decodeSearchResponse(body)
}

// FetchCategory fetches and adapts one category slug's listing.
func (c *Client) FetchCategory(ctx context.Context, slug string) ([]catalog.Patent, error) {
	path := fmt.Sprintf("/searchosapicat/multi/aw/patent/%s/1/200/", url.PathEscape(slug))
	body, err := c.get(ctx, "upstream.category", path)
	if err != nil {
		return nil, err
	}
	return decodeCategoryResponse(body, c.baseURL)
}

// FetchDetail fetches one case's detail page and scrapes it.
func (c *Client) FetchDetail(ctx context.Context, caseNumber string) (catalog.PatentDetail, error) {
	path := "/patent/" + url.PathEscape(caseNumber)
	body, err := c.get(ctx, "upstream.detail", path)
	if err != nil {
		return catalog.PatentDetail{}, err
	}
	return scrape.ParseDetail(string(body), caseNumber), nil
}

func (c *Client) get(ctx context.Context, spanName, path string) ([]byte, error) {
	raw := c.baseURL + path
	ctx, span := c.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("http.url", raw),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		span.SetStatus(codes.Error, "bad url")
		return nil, catalog.NewInvalidURLError(raw, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		return nil, catalog.WrapTransport(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, "upstream status")
		return nil, catalog.NewUpstreamHTTPError(resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read body")
		return nil, catalog.WrapTransport(err)
	}
	return body, nil
}
