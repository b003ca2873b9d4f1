package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Everything except letters, digits, whitespace, dots and apostrophes.
	// Dots and apostrophes survive until descriptors like "d.o.c." are stripped.
	symbolRegex = regexp.MustCompile(`[^\p{L}\p{N}\s.']+`)

	// Matches any remaining run of non letter/digit characters
	punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

	yearRegex       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	nonVintageRegex = regexp.MustCompile(`\bn\.?v\b\.?`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

// NormalizeOptions controls optional normalization steps
type NormalizeOptions struct {
	// StripDescriptors removes quality and appellation descriptors
	// (reserva, crianza, d.o.c.g, ...) for shorter search queries.
	StripDescriptors bool
}

// Normalize turns a free-text wine name into its comparable form: case-folded,
// accent-free, without vintage markers, with punctuation collapsed to spaces and
// source-market terms translated. It never fails and is idempotent.
func Normalize(text string, opts NormalizeOptions) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	s := stripAccents(cases.Fold().String(text))
	s = symbolRegex.ReplaceAllString(s, " ")

	s = yearRegex.ReplaceAllString(s, " ")
	s = nonVintageRegex.ReplaceAllString(s, " ")

	if opts.StripDescriptors {
		for _, re := range descriptorPatterns {
			s = re.ReplaceAllString(s, " ")
		}
	}

	s = punctuationRegex.ReplaceAllString(s, " ")
	s = squeeze(s)

	for _, t := range termTranslations {
		s = t.pattern.ReplaceAllString(s, t.replacement)
	}

	return squeeze(s)
}

// stripAccents removes combining marks: "más allá" -> "mas alla"
func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func squeeze(s string) string {
	return strings.TrimSpace(multiSpaceRegex.ReplaceAllString(s, " "))
}

// tokenize normalizes s and splits it into whitespace-separated tokens
func tokenize(s string) []string {
	return strings.Fields(Normalize(s, NormalizeOptions{}))
}
