package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

// WineServiceConfig holds configuration for the wine service
type WineServiceConfig struct {
	ResolveThreshold float64
	CompareThreshold float64
	BatchConcurrency int
}

// CompareResult is a pairwise verdict with the decision taken on it
type CompareResult struct {
	Verdict  domain.MatchVerdict `json:"verdict"`
	Decision domain.Decision     `json:"decision"`
}

// WineService is the entry point used by the HTTP and CLI layers.
// Flow: resolve -> decide, compare -> decide, plus style and score helpers.
type WineService struct {
	matcher    *MatchingService
	classifier PairClassifier
	styles     *StyleSimplifier
	resolve    DecisionPolicy
	compare    DecisionPolicy
	batch      *BatchResolver
}

// NewWineService wires the matching components together
func NewWineService(
	matcher *MatchingService,
	classifier PairClassifier,
	styles *StyleSimplifier,
	config WineServiceConfig,
) *WineService {
	resolvePolicy := NewDecisionPolicy(config.ResolveThreshold)
	return &WineService{
		matcher:    matcher,
		classifier: classifier,
		styles:     styles,
		resolve:    resolvePolicy,
		compare:    NewDecisionPolicy(config.CompareThreshold),
		batch:      NewBatchResolver(matcher, resolvePolicy, config.BatchConcurrency),
	}
}

// ResolveWine finds the best catalog product for a source wine and decides on it.
// No match is a rejected result, not an error.
func (s *WineService) ResolveWine(ctx context.Context, req domain.ResolveRequest) (*domain.ResolveResult, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}

	candidate, err := s.matcher.Resolve(ctx, req.Name, req.Winery)
	if err != nil {
		return nil, err
	}

	result := &domain.ResolveResult{
		Request:   req,
		Candidate: candidate,
		Decision:  s.resolve.DecideCandidate(candidate),
	}
	zap.L().Info("resolved wine",
		zap.String("name", req.Name),
		zap.String("winery", req.Winery),
		zap.Bool("found", candidate != nil),
		zap.String("decision", string(result.Decision)),
	)
	return result, nil
}

// ResolveBatch resolves many wines, preserving input order
func (s *WineService) ResolveBatch(ctx context.Context, reqs []domain.ResolveRequest) ([]domain.ResolveResult, error) {
	return s.batch.ResolveAll(ctx, reqs)
}

// CompareWines classifies a pair of names and decides on the verdict
func (s *WineService) CompareWines(ctx context.Context, nameA, nameB string, pc *domain.PairContext) CompareResult {
	verdict := s.classifier.ClassifyPair(ctx, nameA, nameB, pc)
	return CompareResult{
		Verdict:  verdict,
		Decision: s.compare.DecideVerdict(verdict),
	}
}

// ExplainScore scores a pair with the service's weights and explains the result
func (s *WineService) ExplainScore(nameA, nameB, winery, producer string) ScoreBreakdown {
	return s.matcher.Scorer().Explain(nameA, nameB, winery, producer)
}

// SimplifyStyle maps a free-text style to a basic category
func (s *WineService) SimplifyStyle(ctx context.Context, style string) domain.StyleResult {
	return s.styles.Simplify(ctx, style)
}
