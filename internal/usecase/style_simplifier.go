package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

// simplifiedStyles are the categories a style can collapse into
var simplifiedStyles = []domain.WineStyle{
	domain.StyleRed,
	domain.StyleWhite,
	domain.StyleRose,
	domain.StyleSparkling,
	domain.StyleDessert,
	domain.StyleFortified,
	domain.StyleUnknown,
}

func isSimplifiedStyle(s domain.WineStyle) bool {
	for _, known := range simplifiedStyles {
		if s == known {
			return true
		}
	}
	return false
}

// styleRule maps keywords to a style. Keywords are normalized; multi-word
// keywords match as whole phrases.
type styleRule struct {
	style      domain.WineStyle
	confidence float64
	keywords   []string
}

// styleRules is checked in order; the first rule with a hit wins
var styleRules = []styleRule{
	{domain.StyleRed, 80, []string{"red", "rosso", "tinto", "merlot", "cabernet", "pinot noir", "chianti", "rioja", "douro"}},
	{domain.StyleWhite, 80, []string{"white", "bianco", "blanco", "chardonnay", "sauvignon", "riesling", "albarino"}},
	{domain.StyleRose, 85, []string{"rose", "rosado", "rosato"}},
	{domain.StyleSparkling, 85, []string{"sparkling", "champagne", "cava", "prosecco", "mousserande", "bubbel", "cremant"}},
	{domain.StyleFortified, 80, []string{"port", "porto", "sherry", "madeira", "marsala"}},
	{domain.StyleDessert, 75, []string{"dessert", "sweet", "ice wine", "icewine", "sauternes", "tokaji"}},
}

// matchStyleRule returns the first rule whose keyword appears in text
func matchStyleRule(text string) (styleRule, bool) {
	padded := " " + Normalize(text, NormalizeOptions{}) + " "
	for _, rule := range styleRules {
		for _, kw := range rule.keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return rule, true
			}
		}
	}
	return styleRule{}, false
}

// DetermineStyle guesses the style of a wine from its name. Unknown when no
// keyword is present.
func DetermineStyle(name string) domain.WineStyle {
	if rule, ok := matchStyleRule(name); ok {
		return rule.style
	}
	return domain.StyleUnknown
}

// catalogCategories maps the retail catalog's Swedish category labels
var catalogCategories = []struct {
	prefix string
	style  domain.WineStyle
}{
	{"rott vin", domain.StyleRed},
	{"vitt vin", domain.StyleWhite},
	{"rosevin", domain.StyleRose},
	{"mousserande vin", domain.StyleSparkling},
	{"starkvin", domain.StyleFortified},
	{"aperitif", domain.StyleDessert},
}

// CategoryStyle maps a catalog category label to a style
func CategoryStyle(category string) domain.WineStyle {
	c := Normalize(category, NormalizeOptions{})
	for _, cat := range catalogCategories {
		if strings.HasPrefix(c, cat.prefix) {
			return cat.style
		}
	}
	return DetermineStyle(category)
}

// StyleSimplifier collapses free-text regional style names into basic categories
type StyleSimplifier struct {
	judge   domain.SemanticJudge
	timeout time.Duration
}

// NewStyleSimplifier creates a simplifier. judge may be nil, in which case
// only the keyword table is used.
func NewStyleSimplifier(judge domain.SemanticJudge, timeout time.Duration) *StyleSimplifier {
	if timeout <= 0 {
		timeout = defaultJudgeTimeout
	}
	return &StyleSimplifier{judge: judge, timeout: timeout}
}

// Simplify maps style to one of the basic categories
func (s *StyleSimplifier) Simplify(ctx context.Context, style string) domain.StyleResult {
	if strings.TrimSpace(style) == "" {
		return domain.StyleResult{
			Style:      domain.StyleUnknown,
			Confidence: 100,
			Reasoning:  "empty style",
			Provenance: domain.ProvenanceFallback,
		}
	}
	if s.judge == nil {
		return fallbackStyle(style)
	}

	judgeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.judge.Judge(judgeCtx, BuildStylePrompt(style))
	if err != nil {
		zap.L().Warn("style judge failed, using keywords", zap.String("style", style), zap.Error(err))
		return fallbackStyle(style)
	}

	result, err := ParseJudgeStyle(raw, style)
	if err != nil {
		zap.L().Warn("style judge response rejected, using keywords",
			zap.String("style", style),
			zap.String("raw", raw),
			zap.Error(err),
		)
		return fallbackStyle(style)
	}
	return result
}

func fallbackStyle(style string) domain.StyleResult {
	rule, ok := matchStyleRule(style)
	if !ok {
		return domain.StyleResult{
			Style:      domain.StyleUnknown,
			Confidence: 50,
			Original:   style,
			Reasoning:  "no style keywords",
			Provenance: domain.ProvenanceFallback,
		}
	}
	return domain.StyleResult{
		Style:      rule.style,
		Confidence: rule.confidence,
		Original:   style,
		Reasoning:  "matched " + strings.ToLower(string(rule.style)) + " keywords",
		Provenance: domain.ProvenanceFallback,
	}
}
