package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/winematch/backend/internal/domain"
)

// defaultBatchConcurrency caps simultaneous resolutions when none is configured
const defaultBatchConcurrency = 4

// Resolver resolves one source wine to a catalog candidate
type Resolver interface {
	Resolve(ctx context.Context, name, winery string) (*domain.MatchCandidate, error)
}

// BatchResolver resolves many wines concurrently with a bounded number of
// in-flight catalog lookups
type BatchResolver struct {
	resolver    Resolver
	policy      DecisionPolicy
	concurrency int
}

// NewBatchResolver creates a batch resolver
func NewBatchResolver(resolver Resolver, policy DecisionPolicy, concurrency int) *BatchResolver {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &BatchResolver{resolver: resolver, policy: policy, concurrency: concurrency}
}

// ResolveAll returns one result per request, in request order regardless of
// completion order. Cancelling ctx abandons in-flight work and returns the
// context error.
func (b *BatchResolver) ResolveAll(ctx context.Context, requests []domain.ResolveRequest) ([]domain.ResolveResult, error) {
	results := make([]domain.ResolveResult, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			candidate, err := b.resolver.Resolve(gctx, req.Name, req.Winery)
			if err != nil {
				return err
			}
			results[i] = domain.ResolveResult{
				Request:   req,
				Candidate: candidate,
				Decision:  b.policy.DecideCandidate(candidate),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
