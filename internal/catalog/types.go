// Package catalog holds the normalized patent domain model and the
// cache-and-fetch service that fronts the NASA technology-transfer portal.
package catalog

// Patent is the normalized summary record produced by every upstream
// adapter. The same real-world technology may carry different ids across
// the search and category APIs; callers should key long-lived state on
// CaseNumber where possible.
type Patent struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category,omitempty"`
	CaseNumber   string `json:"case_number"`
	PatentNumber string `json:"patent_number,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`
	Center       string `json:"center,omitempty"`
	TRL          string `json:"trl,omitempty"`
}

// PatentDetail is the rich record scraped from a single detail page,
// keyed by case number. Constructed once per fetch and never mutated.
type PatentDetail struct {
	CaseNumber          string   `json:"case_number"`
	Title               string   `json:"title"`
	FullDescription     string   `json:"full_description"`
	Benefits            []string `json:"benefits,omitempty"`
	Applications        []string `json:"applications,omitempty"`
	Images              []string `json:"images,omitempty"`
	Videos              []string `json:"videos,omitempty"`
	PatentNumbers       []string `json:"patent_numbers,omitempty"`
	RelatedTechnologies []string `json:"related_technologies,omitempty"`
}

// TitlePlaceholder stands in when a listing arrives with no usable title.
const TitlePlaceholder = "Untitled Technology"

// PatentOfficeURL builds the external patent-office link for an issued
// patent number, or "" when the record has none.
func (p Patent) PatentOfficeURL() string {
	if p.PatentNumber == "" {
		return ""
	}
	return "https://patents.google.com/patent/US" + p.PatentNumber
}
