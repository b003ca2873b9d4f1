package usecase

import "regexp"

// Static word tables. Every entry is already in normalized form (lowercase,
// accent-free) so lookups run against Normalize output directly. The tables
// are never mutated after package initialization.

// wordSet is a read-only membership set
type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}

// termTranslation rewrites a source-catalog phrase into the retail catalog's wording
type termTranslation struct {
	pattern     *regexp.Regexp
	replacement string
}

func translation(from, to string) termTranslation {
	return termTranslation{
		pattern:     regexp.MustCompile(`\b` + regexp.QuoteMeta(from) + `\b`),
		replacement: to,
	}
}

// termTranslations is applied in order, each entry once. No replacement may
// contain the pattern of an earlier entry, which keeps Normalize idempotent.
var termTranslations = []termTranslation{
	translation("rouge", "red"),
	translation("tinto", "red"),
	translation("blanc", "white"),
	translation("blanco", "white"),
	translation("rosado", "rose"),
	translation("dry", "trocken"),
	translation("red blend", "red wine"),
}

// descriptorPatterns are stripped when NormalizeOptions.StripDescriptors is set.
// They run before dots are collapsed so "d.o.c.g." and "docg" both match. The
// bare "do" is left alone since it is also a Portuguese preposition.
var descriptorPatterns = compileAll(
	`\btinto\b`, `\bblanco\b`, `\brosado\b`,
	`\breserva\b`, `\breserve\b`, `\briserva\b`, `\bgran\b`, `\bcrianza\b`,
	`\borganic\b`, `\bbio\b`, `\becologico\b`,
	`\bspecial\b`, `\bedition\b`, `\blimited\b`,
	`\bsuperior\b`, `\bsuperiore\b`, `\bclassico\b`,
	`\bd\.?o\.?c\.?g?\b\.?`, `\bi\.?g\.?[tp]\b\.?`, `\bd\.o\.`,
	`\ba\.?o\.?[cp]\b\.?`, `\bd\.?o\.?p\b\.?`,
	`\bvino\s+de\s+espana\b`, `\bvino\s+d'italia\b`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = regexp.MustCompile(p)
	}
	return out
}

// genericWords carry no identity: body, sweetness, color and marketing filler
var genericWords = newWordSet(
	"red", "white", "wine", "blend", "dry", "sweet", "rose", "vin", "vino",
	"organic", "reserve", "reserva", "tinto", "blanco", "rouge", "blanc",
	"bottle", "vintage", "edition", "special", "limited", "superior", "superiore",
	"cuvee", "brut", "sec", "demi", "extra", "nature",
	// producer-type filler
	"family", "estate", "estates", "bodega", "bodegas", "winery", "wines",
	"cellars", "vineyards",
)

// regionWords are appellations, villages and classification terms
var regionWords = newWordSet(
	// French
	"cotes", "cote", "du", "rhone", "bordeaux", "bourgogne", "burgundy",
	"languedoc", "provence", "loire", "alsace", "champagne", "beaujolais",
	// Italian
	"alba", "asti", "barolo", "barbaresco", "chianti", "toscana", "tuscany",
	"piemonte", "piedmont", "veneto", "sicilia", "sicily", "puglia", "langhe",
	// Spanish
	"rioja", "ribera", "duero", "priorat", "rueda", "rias", "baixas", "penedes",
	// Other
	"douro", "alentejo", "vinho", "verde", "marlborough", "barossa", "napa",
	"sur", "lie", "village", "villages", "premier", "cru", "grand",
)

// grapeVarieties is the grape vocabulary used for the varietal veto
var grapeVarieties = newWordSet(
	"cabernet", "merlot", "shiraz", "syrah", "pinot", "noir", "grigio", "gris",
	"chardonnay", "sauvignon", "riesling", "gewurztraminer", "moscato", "muscat",
	"tempranillo", "garnacha", "grenache", "mourvedre", "malbec", "carmenere",
	"sangiovese", "nebbiolo", "barbera", "primitivo", "zinfandel", "dolcetto",
	"corvina", "rondinella", "vranec", "vranac", "temjanika", "smederevka",
	"zweigelt", "gruner", "veltliner", "weissburgunder", "grauburgunder",
	"spatburgunder", "trollinger", "lemberger", "dornfelder",
	"viognier", "marsanne", "roussanne", "vermentino", "fiano", "greco",
	"albarino", "verdejo", "godello", "monastrell", "bobal", "mencia",
	"touriga", "nacional", "tinta", "roriz", "castelao", "baga", "arinto",
)

// WineColor is a resolved wine color
type WineColor string

const (
	ColorNone  WineColor = ""
	ColorRed   WineColor = "red"
	ColorWhite WineColor = "white"
	ColorRose  WineColor = "rose"
)

// colorKeywords is ordered: the first color with a hit wins
var colorKeywords = []struct {
	color WineColor
	words wordSet
}{
	{ColorRed, newWordSet("red", "rouge", "rosso", "tinto", "rojo", "rot", "rott")},
	{ColorWhite, newWordSet("white", "blanc", "bianco", "blanco", "weiss", "branco", "vitt")},
	{ColorRose, newWordSet("rose", "rosato", "rosado")},
}

// Grapes that imply a color when no color word is present. "pinot" and
// "sauvignon" are ambiguous (noir/grigio, cabernet/blanc); red is checked first.
var (
	redLeaningGrapes = newWordSet(
		"vranec", "vranac", "shiraz", "cabernet", "merlot", "primitivo",
		"nebbiolo", "barbera", "tempranillo", "pinot",
	)
	whiteLeaningGrapes = newWordSet(
		"temjanika", "riesling", "chardonnay", "sauvignon", "moscato",
		"weissburgunder", "gruner",
	)
)

// similarityNoiseWords are dropped before the fallback string similarity
var similarityNoiseWords = newWordSet(
	"wine", "vin", "rouge", "blanc", "rose", "red", "white",
)
