package usecase

import "strings"

// minQueryLength is the shortest search string worth sending to the catalog
const minQueryLength = 3

// BuildQueries returns catalog search strings for a wine, most specific first:
// winery + simplified name, winery alone, full name, simplified name, and the
// first two simplified tokens. Duplicates and strings shorter than three
// characters are dropped.
func BuildQueries(name, winery string) []string {
	full := Normalize(name, NormalizeOptions{})
	simple := Normalize(name, NormalizeOptions{StripDescriptors: true})
	producer := Normalize(winery, NormalizeOptions{})

	var candidates []string
	if producer != "" && simple != "" {
		candidates = append(candidates, producer+" "+simple)
	}
	candidates = append(candidates, producer, full)
	if simple != full {
		candidates = append(candidates, simple)
	}
	if parts := strings.Fields(simple); len(parts) >= 2 {
		candidates = append(candidates, parts[0]+" "+parts[1])
	}

	var queries []string
	seen := make(wordSet)
	for _, q := range candidates {
		if len(q) < minQueryLength || seen.has(q) {
			continue
		}
		seen[q] = struct{}{}
		queries = append(queries, q)
	}
	return queries
}
