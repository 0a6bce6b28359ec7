package upstream

import (
	"encoding/json"
	"errors"

	"github.com/joelkehle/techtransfer-catalog/internal/catalog"
	"github.com/joelkehle/techtransfer-catalog/internal/scrape"
)

// The search API returns positional records with no field names. Offsets
// are fixed by upstream convention and wrapped into Patent here so raw
// arrays never travel past this boundary.
const (
	searchSlotID          = 0
	searchSlotCaseNumber  = 1
	searchSlotTitle       = 2
	searchSlotDescription = 3
	searchSlotCategory    = 5
	searchSlotCenter      = 9
	searchSlotImageURL    = 10

	searchMinSlots = 10
)

type searchEnvelope struct {
	Results []json.RawMessage `json:"results"`
	Count   int               `json:"count"`
	Total   int               `json:"total"`
	PerPage int               `json:"perpage"`
	Page    int               `json:"page"`
}

// decodeSearchResponse adapts the search envelope into Patents. A payload
// that is not the expected envelope shape fails with a malformed-response
// error; individual rows that are short or not scalar arrays are skipped.
func decodeSearchResponse(body []byte) ([]catalog.Patent, error) {
	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, catalog.NewMalformedResponseError(err)
	}
	if env.Results == nil {
		return nil, catalog.NewMalformedResponseError(errors.New("search envelope has no results array"))
	}

	patents := make([]catalog.Patent, 0, len(env.Results))
	for _, raw := range env.Results {
		var row []Scalar
		if err := json.Unmarshal(raw, &row); err != nil {
			continue
		}
		if len(row) < searchMinSlots {
			continue
		}
		patents = append(patents, searchRowToPatent(row))
	}
	return patents, nil
}

func searchRowToPatent(row []Scalar) catalog.Patent {
	title := scrape.Normalize(slot(row, searchSlotTitle).String())
	if title == "" {
		title = catalog.TitlePlaceholder
	}
	description := scrape.Normalize(slot(row, searchSlotDescription).String())
	if description == "" {
		description = "missing"
	}
	return catalog.Patent{
		ID:          displayString(slot(row, searchSlotID)),
		CaseNumber:  displayString(slot(row, searchSlotCaseNumber)),
		Title:       title,
		Description: description,
		Category:    displayString(slot(row, searchSlotCategory)),
		Center:      displayString(slot(row, searchSlotCenter)),
		ImageURL:    slot(row, searchSlotImageURL).String(),
	}
}

func slot(row []Scalar, i int) Scalar {
	if i < len(row) {
		return row[i]
	}
	return Scalar{}
}
