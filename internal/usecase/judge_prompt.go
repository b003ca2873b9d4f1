package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/winematch/backend/internal/domain"
)

// BuildMatchPrompt asks the judge whether two listings are the same wine and
// pins the JSON shape of the answer
func BuildMatchPrompt(nameA, nameB string, pc *domain.PairContext) string {
	var details []string
	if pc != nil {
		if pc.Rating > 0 {
			details = append(details, fmt.Sprintf("Source rating: %.1f/5", pc.Rating))
		}
		if pc.Price > 0 {
			details = append(details, fmt.Sprintf("Price: %.2f SEK", pc.Price))
		}
		if pc.Country != "" {
			details = append(details, "Country: "+pc.Country)
		}
		if pc.Style != "" {
			details = append(details, "Style: "+pc.Style)
		}
	}
	contextText := "No additional context available"
	if len(details) > 0 {
		contextText = strings.Join(details, "\n")
	}

	var b strings.Builder
	b.WriteString("Determine whether these two wine listings refer to the same wine product.\n\n")
	fmt.Fprintf(&b, "WINE 1 (ratings site): %q\n", nameA)
	fmt.Fprintf(&b, "WINE 2 (retail catalog): %q\n\n", nameB)
	b.WriteString("Additional context:\n")
	b.WriteString(contextText)
	b.WriteString(`

Consider producer names (possibly abbreviated or translated), cuvee names and
appellations, grape varieties, color and style, and regional naming conventions.
The retail catalog may use Swedish wording. Vintages may be missing or differ.

Respond with only a JSON object in exactly this format:
{
  "is_match": true or false,
  "confidence_score": <number 0-100>,
  "match_type": "exact" | "partial" | "uncertain" | "different",
  "reasoning": "<short explanation>"
}

Match types:
- "exact": same wine, high confidence (90-100)
- "partial": likely the same wine with some doubt (60-89)
- "uncertain": cannot tell (40-59)
- "different": clearly different wines (0-39)`)

	return b.String()
}

// BuildStylePrompt asks the judge to collapse a regional style name into one basic category
func BuildStylePrompt(style string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Simplify this wine style into one basic category: %q\n\n", style)
	b.WriteString("Categories:\n")
	for _, s := range simplifiedStyles {
		fmt.Fprintf(&b, "- %q\n", string(s))
	}
	b.WriteString(`
Drop regions, appellations and grape names: "Spanish Rioja Red" is "Red Wine",
"French Champagne" is "Sparkling Wine", "German Riesling" is "White Wine".

Respond with only a JSON object in exactly this format:
{
  "simplified_style": "<category>",
  "confidence_score": <number 0-100>,
  "reasoning": "<short explanation>"
}`)
	return b.String()
}

// judgeVerdict mirrors the JSON contract of the match prompt. Pointer fields
// tell a missing key apart from a zero value.
type judgeVerdict struct {
	IsMatch    *bool    `json:"is_match"`
	Confidence *float64 `json:"confidence_score"`
	MatchType  *string  `json:"match_type"`
	Reasoning  *string  `json:"reasoning"`
}

// ParseJudgeVerdict validates a raw judge response against the verdict
// contract. Any missing key, out-of-range confidence or unknown label is an error.
func ParseJudgeVerdict(raw string) (domain.MatchVerdict, error) {
	var v judgeVerdict
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &v); err != nil {
		return domain.MatchVerdict{}, eris.Wrap(domain.ErrJudgeResponse, err.Error())
	}

	switch {
	case v.IsMatch == nil:
		return domain.MatchVerdict{}, eris.Wrap(domain.ErrJudgeResponse, "missing is_match")
	case v.Confidence == nil:
		return domain.MatchVerdict{}, eris.Wrap(domain.ErrJudgeResponse, "missing confidence_score")
	case v.MatchType == nil:
		return domain.MatchVerdict{}, eris.Wrap(domain.ErrJudgeResponse, "missing match_type")
	case v.Reasoning == nil:
		return domain.MatchVerdict{}, eris.Wrap(domain.ErrJudgeResponse, "missing reasoning")
	}

	if *v.Confidence < 0 || *v.Confidence > 100 {
		return domain.MatchVerdict{}, eris.Wrapf(domain.ErrJudgeResponse, "confidence_score %v out of range", *v.Confidence)
	}

	matchType := domain.MatchType(strings.ToLower(strings.TrimSpace(*v.MatchType)))
	if !matchType.Valid() {
		return domain.MatchVerdict{}, eris.Wrapf(domain.ErrJudgeResponse, "unknown match_type %q", *v.MatchType)
	}

	return domain.MatchVerdict{
		IsMatch:    *v.IsMatch,
		Confidence: *v.Confidence,
		Type:       matchType,
		Reasoning:  *v.Reasoning,
		Provenance: domain.ProvenanceJudge,
	}, nil
}

type judgeStyle struct {
	Style      *string  `json:"simplified_style"`
	Confidence *float64 `json:"confidence_score"`
	Reasoning  string   `json:"reasoning"`
}

// ParseJudgeStyle validates a raw style answer; unknown categories are errors
func ParseJudgeStyle(raw, original string) (domain.StyleResult, error) {
	var v judgeStyle
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &v); err != nil {
		return domain.StyleResult{}, eris.Wrap(domain.ErrJudgeResponse, err.Error())
	}
	if v.Style == nil || v.Confidence == nil {
		return domain.StyleResult{}, eris.Wrap(domain.ErrJudgeResponse, "missing simplified_style or confidence_score")
	}
	if *v.Confidence < 0 || *v.Confidence > 100 {
		return domain.StyleResult{}, eris.Wrapf(domain.ErrJudgeResponse, "confidence_score %v out of range", *v.Confidence)
	}

	style := domain.WineStyle(strings.TrimSpace(*v.Style))
	if !isSimplifiedStyle(style) {
		return domain.StyleResult{}, eris.Wrapf(domain.ErrJudgeResponse, "unknown style %q", *v.Style)
	}

	return domain.StyleResult{
		Style:      style,
		Confidence: *v.Confidence,
		Original:   original,
		Reasoning:  v.Reasoning,
		Provenance: domain.ProvenanceJudge,
	}, nil
}

// stripCodeFence removes a surrounding ``` or ```json fence
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.HasPrefix(strings.TrimSpace(s[:nl]), "{") {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
