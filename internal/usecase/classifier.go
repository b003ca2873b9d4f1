package usecase

import (
	"strings"
	"unicode/utf8"
)

// minWordLength is the shortest token that can count as identifying content
const minWordLength = 3

// Signals are the lexical facts derived from one normalized wine name.
// They drive the hard vetoes and never add points on their own.
type Signals struct {
	Tokens      []string
	Distinctive []string
	Grapes      []string
	Color       WineColor
}

// HasGrape reports whether the name names any grape variety
func (s Signals) HasGrape() bool {
	return len(s.Grapes) > 0
}

// Classify derives Signals from an already normalized name. knownWinery is raw
// text; its tokens never count as distinctive.
func Classify(normalizedName, knownWinery string) Signals {
	tokens := uniqueTokens(normalizedName)
	winery := newWordSet(tokenize(knownWinery)...)

	sig := Signals{Tokens: tokens}
	for _, tok := range tokens {
		if grapeVarieties.has(tok) {
			sig.Grapes = append(sig.Grapes, tok)
		}
		if isDistinctive(tok, winery) {
			sig.Distinctive = append(sig.Distinctive, tok)
		}
	}
	sig.Color = detectColor(tokens)

	return sig
}

func isDistinctive(tok string, winery wordSet) bool {
	if utf8.RuneCountInString(tok) < minWordLength {
		return false
	}
	return !genericWords.has(tok) && !regionWords.has(tok) && !winery.has(tok)
}

// detectColor returns the first color whose keywords appear in tokens, else
// infers one from grape varieties. Inference is best-effort: "pinot" reads red
// even for pinot grigio.
func detectColor(tokens []string) WineColor {
	for _, c := range colorKeywords {
		if containsAny(c.words, tokens) {
			return c.color
		}
	}
	if containsAny(redLeaningGrapes, tokens) {
		return ColorRed
	}
	if containsAny(whiteLeaningGrapes, tokens) {
		return ColorWhite
	}
	return ColorNone
}

func containsAny(set wordSet, tokens []string) bool {
	for _, t := range tokens {
		if set.has(t) {
			return true
		}
	}
	return false
}

// uniqueTokens splits s on spaces, dropping repeats and keeping first-seen order
func uniqueTokens(s string) []string {
	var out []string
	seen := make(wordSet)
	for _, tok := range strings.Fields(s) {
		if seen.has(tok) {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
