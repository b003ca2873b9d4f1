package usecase

import (
	"fmt"
	"math"
	"strings"

	"github.com/winematch/backend/internal/domain"
)

// Fallback label breakpoints on the 0-100 similarity scale
const (
	exactSimilarity     = 90.0
	partialSimilarity   = 70.0
	uncertainSimilarity = 40.0
)

// FallbackVerdict compares two names by string similarity alone. It is pure:
// the same two names always produce the same verdict.
func FallbackVerdict(nameA, nameB string) domain.MatchVerdict {
	a, b := similarityText(nameA), similarityText(nameB)
	if a == "" || b == "" {
		return domain.MatchVerdict{
			Type:       domain.MatchDifferent,
			Reasoning:  "empty wine name",
			Provenance: domain.ProvenanceFallback,
		}
	}

	confidence := math.Round(similarityRatio(a, b)*1000) / 10
	matchType := similarityLabel(confidence)

	return domain.MatchVerdict{
		IsMatch:    matchType == domain.MatchExact || matchType == domain.MatchPartial,
		Confidence: confidence,
		Type:       matchType,
		Reasoning:  fmt.Sprintf("string similarity %.1f%% between %q and %q", confidence, a, b),
		Provenance: domain.ProvenanceFallback,
	}
}

func similarityLabel(confidence float64) domain.MatchType {
	switch {
	case confidence >= exactSimilarity:
		return domain.MatchExact
	case confidence >= partialSimilarity:
		return domain.MatchPartial
	case confidence >= uncertainSimilarity:
		return domain.MatchUncertain
	default:
		return domain.MatchDifferent
	}
}

// similarityText is the normalized name without color and "wine" noise. A name
// made only of noise keeps its noise words.
func similarityText(name string) string {
	normalized := Normalize(name, NormalizeOptions{})
	stripped := strings.Join(withoutWords(strings.Fields(normalized), similarityNoiseWords), " ")
	if stripped == "" {
		return normalized
	}
	return stripped
}

// similarityRatio is the Ratcliff/Obershelp ratio 2*M/T, where M counts runes in
// recursively found longest common blocks and T is the total rune count.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

type runeSpan struct {
	alo, ahi, blo, bhi int
}

func matchingRunes(a, b []rune) int {
	matched := 0
	queue := []runeSpan{{0, len(a), 0, len(b)}}
	for len(queue) > 0 {
		span := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestCommonBlock(a, b, span)
		if k == 0 {
			continue
		}
		matched += k
		if span.alo < i && span.blo < j {
			queue = append(queue, runeSpan{span.alo, i, span.blo, j})
		}
		if i+k < span.ahi && j+k < span.bhi {
			queue = append(queue, runeSpan{i + k, span.ahi, j + k, span.bhi})
		}
	}
	return matched
}

// longestCommonBlock finds the longest common run inside span. Ties go to the
// block starting earliest in a, then earliest in b.
func longestCommonBlock(a, b []rune, span runeSpan) (besti, bestj, bestk int) {
	besti, bestj = span.alo, span.blo

	// Two rows instead of the full matrix
	prev := make([]int, span.bhi-span.blo+1)
	curr := make([]int, span.bhi-span.blo+1)

	for i := span.alo; i < span.ahi; i++ {
		for j := span.blo; j < span.bhi; j++ {
			col := j - span.blo + 1
			if a[i] != b[j] {
				curr[col] = 0
				continue
			}
			k := prev[col-1] + 1
			curr[col] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev, curr = curr, prev
	}
	return besti, bestj, bestk
}
