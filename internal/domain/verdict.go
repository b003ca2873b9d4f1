package domain

// MatchType is the categorical label of a pairwise verdict
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchPartial   MatchType = "partial"
	MatchUncertain MatchType = "uncertain"
	MatchDifferent MatchType = "different"
)

// Valid reports whether t is one of the four known labels
func (t MatchType) Valid() bool {
	switch t {
	case MatchExact, MatchPartial, MatchUncertain, MatchDifferent:
		return true
	}
	return false
}

// Provenance records which strategy produced a verdict
type Provenance string

const (
	ProvenanceJudge    Provenance = "semantic-judge"
	ProvenanceFallback Provenance = "algorithmic-fallback"
)

// MatchVerdict is the immutable result of one pairwise comparison
type MatchVerdict struct {
	IsMatch    bool       `json:"isMatch"`
	Confidence float64    `json:"confidence"` // 0-100
	Type       MatchType  `json:"matchType"`
	Reasoning  string     `json:"reasoning"`
	Provenance Provenance `json:"provenance"`
}

// PairContext carries optional side information for a pairwise comparison
type PairContext struct {
	Rating  float64 `json:"rating,omitempty"` // source rating out of 5
	Price   float64 `json:"price,omitempty"`
	Country string  `json:"country,omitempty"`
	Style   string  `json:"style,omitempty"`
}

// Decision is the accept/reject outcome of the decision policy
type Decision string

const (
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// WineStyle is one of the simplified consumer-facing style categories
type WineStyle string

const (
	StyleRed       WineStyle = "Red Wine"
	StyleWhite     WineStyle = "White Wine"
	StyleRose      WineStyle = "Rosé Wine"
	StyleSparkling WineStyle = "Sparkling Wine"
	StyleDessert   WineStyle = "Dessert Wine"
	StyleFortified WineStyle = "Fortified Wine"
	StyleUnknown   WineStyle = "Unknown"
)

// StyleResult is the outcome of simplifying a free-text wine style
type StyleResult struct {
	Style      WineStyle  `json:"style"`
	Confidence float64    `json:"confidence"`
	Original   string     `json:"original"`
	Reasoning  string     `json:"reasoning,omitempty"`
	Provenance Provenance `json:"provenance"`
}
