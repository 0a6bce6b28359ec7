package upstream

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
	"github.com/joelkehle/techtransfer-catalog/internal/scrape"
)

// categoryBatchSize bounds concurrent category fetches per wave so an
// all-categories browse does not hammer the portal.
const categoryBatchSize = 3

type categoryHit struct {
	ID     string         `json:"_id"`
	Source categorySource `json:"_source"`
}

type categorySource struct {
	Title          string `json:"title"`
	Abstract       string `json:"abstract"`
	TechDesc       string `json:"tech_desc"`
	Category       string `json:"category"`
	ClientRecordID string `json:"client_record_id"`
	Center         string `json:"center"`
	PatentNumber   string `json:"patent_number"`
	TRL            Scalar `json:"trl"`
	Img1           string `json:"img1"`
}

// decodeCategoryResponse adapts one category listing. Records with no
// usable title are excluded rather than padded with placeholders; the
// category API reliably titles everything it indexes, so a blank title
// marks a withdrawn listing.
func decodeCategoryResponse(body []byte, baseURL string) ([]catalog.Patent, error) {
	var hits []categoryHit
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, catalog.NewMalformedResponseError(err)
	}
	patents := make([]catalog.Patent, 0, len(hits))
	for _, hit := range hits {
		title := scrape.Normalize(hit.Source.Title)
		if title == "" {
			continue
		}
		patents = append(patents, catalog.Patent{
			ID:           hit.ID,
			Title:        title,
			Description:  scrape.MergeDescriptions(scrape.Normalize(hit.Source.Abstract), scrape.Normalize(hit.Source.TechDesc)),
			Category:     hit.Source.Category,
			CaseNumber:   hit.Source.ClientRecordID,
			PatentNumber: hit.Source.PatentNumber,
			ImageURL:     absoluteURL(baseURL, hit.Source.Img1),
			Center:       hit.Source.Center,
			TRL:          hit.Source.TRL.String(),
		})
	}
	return patents, nil
}

func absoluteURL(baseURL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return baseURL + "/" + strings.TrimLeft(raw, "/")
}

// FetchAllCategories fans out one fetch per slug in waves of three,
// tolerating per-slug failures (a failed slug contributes zero records).
// Duplicate ids across categories keep the first-seen record; within a
// wave "first" follows slug order, so the merge is deterministic for a
// fixed slug list. Output is sorted by title ascending, ties keeping
// merge order.
func (c *Client) FetchAllCategories(ctx context.Context, slugs []string) ([]catalog.Patent, error) {
	seen := make(map[string]struct{})
	var merged []catalog.Patent

	for start := 0; start < len(slugs); start += categoryBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, catalog.WrapTransport(err)
		}
		end := start + categoryBatchSize
		if end > len(slugs) {
			end = len(slugs)
		}
		batch := slugs[start:end]
		results := make([][]catalog.Patent, len(batch))

		var wg sync.WaitGroup
		for i, slug := range batch {
			wg.Add(1)
			go func(i int, slug string) {
				defer wg.Done()
				patents, err := c.FetchCategory(ctx, slug)
				if err != nil {
					log.Printf("category fetch failed slug=%s err=%v", slug, err)
					return
				}
				results[i] = patents
			}(i, slug)
		}
		wg.Wait()

		for _, patents := range results {
			for _, p := range patents {
				if _, ok := seen[p.ID]; ok {
					continue
				}
				seen[p.ID] = struct{}{}
				merged = append(merged, p)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, catalog.WrapTransport(err)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Title < merged[j].Title })
	return merged, nil
}
