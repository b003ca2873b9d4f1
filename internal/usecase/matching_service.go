package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

// Packaging keywords as they appear in the catalog's packaging field
var (
	glassPackaging = []string{"glas", "flaska", "bottle"}
	paperPackaging = []string{"papp", "bag", "box", "tetra", "carton"}
)

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	Filters        domain.SearchFilters
	MinVolume      float64 // ml; smaller formats are last-resort candidates
	MinRawScore    float64
	EarlyExitScore float64
	GlassBonus     float64
	PaperPenalty   float64
	Weights        Weights
}

// DefaultMatchConfig returns the tuned defaults for the retail catalog
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		Filters: domain.SearchFilters{
			VolumeMin: 700,
			VolumeMax: 800,
			Category:  "Vin",
			PageSize:  10,
		},
		MinVolume:      700,
		MinRawScore:    40,
		EarlyExitScore: 80,
		GlassBonus:     5,
		PaperPenalty:   10,
		Weights:        DefaultWeights(),
	}
}

// MatchingService resolves a source wine name to its best catalog product
type MatchingService struct {
	searcher domain.CatalogSearcher
	verified *VerifiedMatches
	scorer   *Scorer
	config   MatchConfig
}

// NewMatchingService creates a matching service. verified may be nil.
// Zero-valued thresholds fall back to the defaults.
func NewMatchingService(searcher domain.CatalogSearcher, verified *VerifiedMatches, config MatchConfig) *MatchingService {
	defaults := DefaultMatchConfig()
	if config.MinRawScore <= 0 {
		config.MinRawScore = defaults.MinRawScore
	}
	if config.EarlyExitScore <= 0 {
		config.EarlyExitScore = defaults.EarlyExitScore
	}
	if config.Filters.PageSize <= 0 {
		config.Filters.PageSize = defaults.Filters.PageSize
	}
	if config.Weights == (Weights{}) {
		config.Weights = defaults.Weights
	}

	return &MatchingService{
		searcher: searcher,
		verified: verified,
		scorer:   NewScorer(config.Weights),
		config:   config,
	}
}

// Scorer exposes the scorer configured for this service
func (s *MatchingService) Scorer() *Scorer {
	return s.scorer
}

// Resolve probes the catalog with progressively broader queries and returns the
// best candidate, or nil when nothing clears the raw score floor. Catalog
// failures count as an empty result for that query; only context cancellation
// is returned as an error.
func (s *MatchingService) Resolve(ctx context.Context, name, winery string) (*domain.MatchCandidate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	if candidate, done, err := s.resolveVerified(ctx, name, winery); done || err != nil {
		return candidate, err
	}

	log := zap.L().With(zap.String("name", name), zap.String("winery", winery))
	style := DetermineStyle(name)

	var best, bestSmall *domain.MatchCandidate
	for _, query := range BuildQueries(name, winery) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := s.searcher.Search(ctx, query, s.config.Filters)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn("catalog search failed", zap.String("query", query), zap.Error(err))
			continue
		}

		for _, record := range records {
			candidate := s.scoreRecord(name, winery, query, record)

			log.Debug("scored candidate",
				zap.String("query", query),
				zap.String("candidate", record.DisplayName()),
				zap.String("packaging", record.Packaging),
				zap.Float64("score", candidate.Score),
				zap.Float64("adjusted", candidate.AdjustedScore),
			)
			if style != domain.StyleUnknown {
				if got := CategoryStyle(record.Category); got != domain.StyleUnknown && got != style {
					log.Debug("style disagreement",
						zap.String("candidate", record.DisplayName()),
						zap.String("expected", string(style)),
						zap.String("category", record.Category),
					)
				}
			}

			if candidate.Score < s.config.MinRawScore {
				continue
			}
			if record.Volume > 0 && record.Volume < s.config.MinVolume {
				bestSmall = better(bestSmall, candidate)
				continue
			}
			best = better(best, candidate)
		}

		if best != nil && best.AdjustedScore >= s.config.EarlyExitScore {
			break
		}
	}

	if best == nil {
		best = bestSmall
	}
	if best != nil {
		log.Debug("best match",
			zap.String("candidate", best.Record.DisplayName()),
			zap.Float64("adjusted", best.AdjustedScore),
		)
	}
	return best, nil
}

// resolveVerified consults the manually verified pairs. done is true when the
// verified entry settles the lookup.
func (s *MatchingService) resolveVerified(ctx context.Context, name, winery string) (*domain.MatchCandidate, bool, error) {
	if s.verified == nil {
		return nil, false, nil
	}
	entry, ok := s.verified.Lookup(winery, name)
	if !ok {
		return nil, false, nil
	}
	if entry.ProductNumber == "" {
		zap.L().Debug("verified no-match", zap.String("name", name), zap.String("winery", winery))
		return nil, true, nil
	}

	record, err := s.searcher.GetProduct(ctx, entry.ProductNumber)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, true, ctxErr
		}
		zap.L().Warn("verified product lookup failed, searching instead",
			zap.String("productNumber", entry.ProductNumber),
			zap.Error(err),
		)
		return nil, false, nil
	}

	return &domain.MatchCandidate{
		Record:        *record,
		Score:         100,
		AdjustedScore: 100,
		Verified:      true,
	}, true, nil
}

// scoreRecord scores one catalog record against the source name, with and
// without the winery prefixed, and applies the packaging preference
func (s *MatchingService) scoreRecord(name, winery, query string, record domain.CatalogRecord) *domain.MatchCandidate {
	display := record.DisplayName()
	score := s.scorer.Score(name, display, winery, record.Producer)
	if winery != "" {
		score = max(score, s.scorer.Score(winery+" "+name, display, winery, record.Producer))
	}

	adjusted := score
	switch packagingKind(record.Packaging) {
	case packagingGlass:
		adjusted += s.config.GlassBonus
	case packagingPaper:
		adjusted -= s.config.PaperPenalty
	}

	return &domain.MatchCandidate{
		Record:        record,
		Score:         score,
		AdjustedScore: adjusted,
		Query:         query,
	}
}

type packaging int

const (
	packagingUnknown packaging = iota
	packagingGlass
	packagingPaper
)

func packagingKind(raw string) packaging {
	p := strings.ToLower(raw)
	for _, kw := range glassPackaging {
		if strings.Contains(p, kw) {
			return packagingGlass
		}
	}
	for _, kw := range paperPackaging {
		if strings.Contains(p, kw) {
			return packagingPaper
		}
	}
	return packagingUnknown
}

// better keeps the current best unless the candidate's adjusted score is strictly higher
func better(current, candidate *domain.MatchCandidate) *domain.MatchCandidate {
	if current == nil || candidate.AdjustedScore > current.AdjustedScore {
		return candidate
	}
	return current
}
