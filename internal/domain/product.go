package domain

import "strings"

// CatalogRecord is a single product returned by the retail catalog search
type CatalogRecord struct {
	ProductNumber     string  `json:"productNumber"`
	NameBold          string  `json:"nameBold"`
	NameThin          string  `json:"nameThin,omitempty"`
	Producer          string  `json:"producer,omitempty"`
	Price             float64 `json:"price,omitempty"`
	Country           string  `json:"country,omitempty"`
	Region            string  `json:"region,omitempty"`
	Packaging         string  `json:"packaging,omitempty"`
	Volume            float64 `json:"volume,omitempty"` // millilitres, 0 when unknown
	Category          string  `json:"category,omitempty"`
	Vintage           string  `json:"vintage,omitempty"`
	AlcoholPercentage float64 `json:"alcoholPercentage,omitempty"`
}

// DisplayName joins the bold and thin name parts the way the catalog renders them
func (r CatalogRecord) DisplayName() string {
	return strings.TrimSpace(r.NameBold + " " + r.NameThin)
}

// SearchFilters narrows a catalog text search
type SearchFilters struct {
	VolumeMin float64
	VolumeMax float64
	Category  string
	PageSize  int
}

// MatchCandidate is a scored catalog record for one source name.
// Score is the raw lexical score; AdjustedScore includes packaging preferences.
type MatchCandidate struct {
	Record        CatalogRecord `json:"record"`
	Score         float64       `json:"score"`
	AdjustedScore float64       `json:"adjustedScore"`
	Query         string        `json:"query,omitempty"`
	Verified      bool          `json:"verified,omitempty"`
}

// ResolveRequest identifies one source wine to look up in the catalog
type ResolveRequest struct {
	Name   string `json:"name" binding:"required"`
	Winery string `json:"winery,omitempty"`
}

// ResolveResult is the outcome of resolving one source wine
type ResolveResult struct {
	Request   ResolveRequest  `json:"request"`
	Candidate *MatchCandidate `json:"match"`
	Decision  Decision        `json:"decision"`
}
