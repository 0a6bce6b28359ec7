package catalog

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Fetcher is the upstream boundary the service orchestrates. Implemented
// by upstream.Client; faked in tests.
type Fetcher interface {
	Search(ctx context.Context, query string, page int) ([]Patent, error)
	FetchCategory(ctx context.Context, slug string) ([]Patent, error)
	FetchAllCategories(ctx context.Context, slugs []string) ([]Patent, error)
	FetchDetail(ctx context.Context, caseNumber string) (PatentDetail, error)
}

// CategoryAll is the sentinel browse key that fans out across every
// configured category slug.
const CategoryAll = "all"

// Cache scopes accepted by ClearCache.
const (
	ScopeCategory = "category"
	ScopeSearch   = "search"
	ScopeDetail   = "detail"
	ScopeAll      = "all"
)

const (
	categoryTTL = 5 * time.Minute
	searchTTL   = 3 * time.Minute
	detailTTL   = 10 * time.Minute
)

// DefaultCategories are the portal's browse categories, used for the
// CategoryAll fan-out.
var DefaultCategories = []string{
	"aerospace",
	"communications",
	"electrical and electronics",
	"environment",
	"health medicine and biotechnology",
	"information technology and software",
	"instrumentation",
	"manufacturing",
	"materials and coatings",
	"mechanical and fluid systems",
	"optics",
	"power generation and storage",
	"propulsion",
	"robotics automation and control",
	"sensors",
}

type cacheEntry[T any] struct {
	value     T
	fetchedAt time.Time
}

type ServiceConfig struct {
	Fetcher    Fetcher
	Categories []string
}

// Service is the public façade over the portal: browse, search and detail
// with per-kind TTL caches. Construct one per process and inject it into
// consumers; all cache mutation is serialized on its mutex, held only for
// the read-check or write, never across a network call.
type Service struct {
	fetcher    Fetcher
	categories []string

	mu            sync.Mutex
	categoryCache map[string]cacheEntry[[]Patent]
	searchCache   map[string]cacheEntry[[]Patent]
	detailCache   map[string]cacheEntry[PatentDetail]

	now func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	categories := cfg.Categories
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Service{
		fetcher:       cfg.Fetcher,
		categories:    categories,
		categoryCache: map[string]cacheEntry[[]Patent]{},
		searchCache:   map[string]cacheEntry[[]Patent]{},
		detailCache:   map[string]cacheEntry[PatentDetail]{},
		now:           time.Now,
	}
}

// BrowseByCategory returns one category's listing, or the merged
// cross-category listing for CategoryAll (and for a blank category).
func (s *Service) BrowseByCategory(ctx context.Context, category string) ([]Patent, error) {
	key := strings.ToLower(strings.TrimSpace(category))
	if key == "" {
		key = CategoryAll
	}
	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}
	if patents, ok := s.cachedPatents(s.categoryCache, key, categoryTTL); ok {
		return patents, nil
	}

	var patents []Patent
	var err error
	if key == CategoryAll {
		patents, err = s.fetcher.FetchAllCategories(ctx, s.categories)
	} else {
		patents, err = s.fetcher.FetchCategory(ctx, key)
	}
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	s.mu.Lock()
	s.categoryCache[key] = cacheEntry[[]Patent]{value: patents, fetchedAt: s.now()}
	s.mu.Unlock()
	return copyPatents(patents), nil
}

// Search queries the portal's search API. A blank query fails before any
// network work; an empty result page is a valid outcome, not an error.
func (s *Service) Search(ctx context.Context, query string, page int) ([]Patent, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, NewEmptyQueryError()
	}
	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}
	key := strings.ToLower(trimmed) + "|" + strconv.Itoa(page)
	if patents, ok := s.cachedPatents(s.searchCache, key, searchTTL); ok {
		return patents, nil
	}

	patents, err := s.fetcher.Search(ctx, trimmed, page)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, NewCancelledError(err)
	}

	s.mu.Lock()
	s.searchCache[key] = cacheEntry[[]Patent]{value: patents, fetchedAt: s.now()}
	s.mu.Unlock()
	return copyPatents(patents), nil
}

// GetDetail returns the scraped detail record for one case number.
func (s *Service) GetDetail(ctx context.Context, caseNumber string) (PatentDetail, error) {
	if err := ctx.Err(); err != nil {
		return PatentDetail{}, NewCancelledError(err)
	}
	s.mu.Lock()
	entry, ok := s.detailCache[caseNumber]
	fresh := ok && s.now().Sub(entry.fetchedAt) < detailTTL
	s.mu.Unlock()
	if fresh {
		return copyDetail(entry.value), nil
	}

	detail, err := s.fetcher.FetchDetail(ctx, caseNumber)
	if err != nil {
		return PatentDetail{}, err
	}
	if err := ctx.Err(); err != nil {
		return PatentDetail{}, NewCancelledError(err)
	}

	s.mu.Lock()
	s.detailCache[caseNumber] = cacheEntry[PatentDetail]{value: detail, fetchedAt: s.now()}
	s.mu.Unlock()
	return copyDetail(detail), nil
}

// ClearCache drops cached entries for one scope, or everything for
// ScopeAll. Unknown scopes are a no-op.
func (s *Service) ClearCache(scope string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Maps are cleared in place so the references handed to cachedPatents
	// stay valid for the life of the service.
	switch scope {
	case ScopeCategory:
		clear(s.categoryCache)
	case ScopeSearch:
		clear(s.searchCache)
	case ScopeDetail:
		clear(s.detailCache)
	case ScopeAll:
		clear(s.categoryCache)
		clear(s.searchCache)
		clear(s.detailCache)
	}
}

func (s *Service) cachedPatents(cache map[string]cacheEntry[[]Patent], key string, ttl time.Duration) ([]Patent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := cache[key]
	if !ok || s.now().Sub(entry.fetchedAt) >= ttl {
		return nil, false
	}
	return copyPatents(entry.value), true
}

// copyPatents hands callers their own snapshot so cached slices are never
// aliased outside the service.
func copyPatents(patents []Patent) []Patent {
	out := make([]Patent, len(patents))
	copy(out, patents)
	return out
}

// copyDetail does the same for a detail record, whose slice fields would
// otherwise alias the cached entry.
func copyDetail(detail PatentDetail) PatentDetail {
	detail.Benefits = copyStrings(detail.Benefits)
	detail.Applications = copyStrings(detail.Applications)
	detail.Images = copyStrings(detail.Images)
	detail.Videos = copyStrings(detail.Videos)
	detail.PatentNumbers = copyStrings(detail.PatentNumbers)
	detail.RelatedTechnologies = copyStrings(detail.RelatedTechnologies)
	return detail
}

func copyStrings(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
