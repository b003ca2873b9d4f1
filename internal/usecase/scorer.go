package usecase

import "unicode/utf8"

// identicalScore is returned when both names reduce to the same token set
const identicalScore = 100.0

// Veto reasons reported by Explain
const (
	VetoNone        = ""
	VetoEmpty       = "empty-name"
	VetoGrape       = "grape-mismatch"
	VetoColor       = "color-mismatch"
	VetoDistinctive = "distinctive-words-missing"
)

// Weights are the point allocations of the scorer. They are empirically tuned
// and meant to be recalibrated against labelled pairs, not re-derived.
type Weights struct {
	ProducerMatch      float64 `mapstructure:"producer_match"`       // winery shares a token with the producer
	WineryInName       float64 `mapstructure:"winery_in_name"`       // winery token appears in the candidate name
	Coverage           float64 `mapstructure:"coverage"`             // max points for source token coverage
	ExtraTokenPenalty  float64 `mapstructure:"extra_token_penalty"`  // per candidate-only token
	ExtraTokenCap      float64 `mapstructure:"extra_token_cap"`      // cap on the extra-token penalty
	AddedGrapePenalty  float64 `mapstructure:"added_grape_penalty"`  // candidate names a grape the source does not
	MinDistinctiveRate float64 `mapstructure:"min_distinctive_rate"` // share of distinctive words that must survive
}

// DefaultWeights returns the tuned default allocation
func DefaultWeights() Weights {
	return Weights{
		ProducerMatch:      25,
		WineryInName:       25,
		Coverage:           40,
		ExtraTokenPenalty:  3,
		ExtraTokenCap:      10,
		AddedGrapePenalty:  5,
		MinDistinctiveRate: 0.5,
	}
}

// ScoreBreakdown explains how a score was reached
type ScoreBreakdown struct {
	Score          float64  `json:"score"`
	Veto           string   `json:"veto,omitempty"`
	MatchedTokens  []string `json:"matchedTokens,omitempty"`
	ExtraTokens    []string `json:"extraTokens,omitempty"`
	ProducerPoints float64  `json:"producerPoints"`
	WineryPoints   float64  `json:"wineryPoints"`
	CoveragePoints float64  `json:"coveragePoints"`
	ExtraPenalty   float64  `json:"extraPenalty"`
	GrapePenalty   float64  `json:"grapePenalty"`
}

// Scorer computes the lexical compatibility of a source name and a catalog name.
// It is pure and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer creates a scorer with the given weights
func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

var defaultScorer = NewScorer(DefaultWeights())

// Score rates nameA against nameB with the default weights
func Score(nameA, nameB, wineryA, producerB string) float64 {
	return defaultScorer.Score(nameA, nameB, wineryA, producerB)
}

// Score returns a value in [0,100]. wineryA is the known producer of nameA and
// producerB the catalog's producer for nameB; both may be empty.
func (s *Scorer) Score(nameA, nameB, wineryA, producerB string) float64 {
	return s.Explain(nameA, nameB, wineryA, producerB).Score
}

// Explain scores the pair and reports the veto or per-component points
func (s *Scorer) Explain(nameA, nameB, wineryA, producerB string) ScoreBreakdown {
	var b ScoreBreakdown

	normA := Normalize(nameA, NormalizeOptions{})
	normB := Normalize(nameB, NormalizeOptions{})
	if normA == "" || normB == "" {
		b.Veto = VetoEmpty
		return b
	}

	sigA := Classify(normA, wineryA)
	sigB := Classify(normB, producerB)
	setB := newWordSet(sigB.Tokens...)

	if sigA.HasGrape() && sigB.HasGrape() && !overlaps(sigA.Grapes, newWordSet(sigB.Grapes...)) {
		b.Veto = VetoGrape
		return b
	}

	if sigA.Color != ColorNone && sigB.Color != ColorNone && sigA.Color != sigB.Color {
		b.Veto = VetoColor
		return b
	}

	if len(sigA.Distinctive) > 0 {
		found := countIn(sigA.Distinctive, setB)
		if float64(found)/float64(len(sigA.Distinctive)) < s.weights.MinDistinctiveRate {
			b.Veto = VetoDistinctive
			return b
		}
	}

	if sameTokenSet(sigA.Tokens, setB) {
		b.MatchedTokens = sigA.Tokens
		b.Score = identicalScore
		return b
	}

	wineryAll := newWordSet(tokenize(wineryA)...)
	wineryTokens := significantTokens(wineryA)
	producerTokens := newWordSet(significantTokens(producerB)...)

	if overlaps(wineryTokens, producerTokens) {
		b.ProducerPoints = s.weights.ProducerMatch
	}
	if overlaps(wineryTokens, setB) {
		b.WineryPoints = s.weights.WineryInName
	}

	contentA := withoutWords(sigA.Tokens, genericWords)
	for _, tok := range contentA {
		if setB.has(tok) {
			b.MatchedTokens = append(b.MatchedTokens, tok)
		}
	}
	if len(contentA) > 0 {
		b.CoveragePoints = float64(len(b.MatchedTokens)) / float64(len(contentA)) * s.weights.Coverage
	}

	knownA := newWordSet(sigA.Tokens...)
	for _, tok := range withoutWords(withoutWords(sigB.Tokens, genericWords), wineryAll) {
		if !knownA.has(tok) {
			b.ExtraTokens = append(b.ExtraTokens, tok)
		}
	}
	if len(b.ExtraTokens) > 0 && len(contentA) > 0 {
		b.ExtraPenalty = min(s.weights.ExtraTokenCap, float64(len(b.ExtraTokens))*s.weights.ExtraTokenPenalty)
	}

	if !sigA.HasGrape() && sigB.HasGrape() {
		b.GrapePenalty = s.weights.AddedGrapePenalty
	}

	total := b.ProducerPoints + b.WineryPoints + b.CoveragePoints - b.ExtraPenalty - b.GrapePenalty
	b.Score = max(0, min(100, total))
	return b
}

// significantTokens returns the normalized tokens of s long enough to identify a producer
func significantTokens(s string) []string {
	var out []string
	for _, tok := range tokenize(s) {
		if utf8.RuneCountInString(tok) >= minWordLength {
			out = append(out, tok)
		}
	}
	return out
}

func overlaps(tokens []string, set wordSet) bool {
	return containsAny(set, tokens)
}

func countIn(tokens []string, set wordSet) int {
	n := 0
	for _, t := range tokens {
		if set.has(t) {
			n++
		}
	}
	return n
}

func withoutWords(tokens []string, exclude wordSet) []string {
	var out []string
	for _, t := range tokens {
		if !exclude.has(t) {
			out = append(out, t)
		}
	}
	return out
}

// sameTokenSet reports whether unique tokens and set hold exactly the same words
func sameTokenSet(unique []string, set wordSet) bool {
	return len(unique) == len(set) && countIn(unique, set) == len(unique)
}
