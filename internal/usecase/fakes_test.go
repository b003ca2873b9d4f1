package usecase

import (
	"context"
	"sync"

	"github.com/winematch/backend/internal/domain"
)

// fakeSearcher returns canned records and records every query it receives
type fakeSearcher struct {
	mu       sync.Mutex
	records  map[string][]domain.CatalogRecord // by query; "*" matches any query
	products map[string]domain.CatalogRecord
	err      error
	queries  []string
	lookups  []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, _ domain.SearchFilters) ([]domain.CatalogRecord, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	if recs, ok := f.records[query]; ok {
		return recs, nil
	}
	return f.records["*"], nil
}

func (f *fakeSearcher) GetProduct(ctx context.Context, productNumber string) (*domain.CatalogRecord, error) {
	f.mu.Lock()
	f.lookups = append(f.lookups, productNumber)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rec, ok := f.products[productNumber]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &rec, nil
}

func (f *fakeSearcher) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

// fakeJudge answers every prompt with the same response
type fakeJudge struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool
	prompts  []string
}

func (f *fakeJudge) Judge(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

func (f *fakeJudge) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
