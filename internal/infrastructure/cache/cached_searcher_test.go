package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winematch/backend/internal/domain"
)

type countingSearcher struct {
	mu       sync.Mutex
	searches int
	lookups  int
	err      error
}

func (s *countingSearcher) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.CatalogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches++
	if s.err != nil {
		return nil, s.err
	}
	return []domain.CatalogRecord{{ProductNumber: "1", NameBold: query}}, nil
}

func (s *countingSearcher) GetProduct(ctx context.Context, productNumber string) (*domain.CatalogRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if s.err != nil {
		return nil, s.err
	}
	return &domain.CatalogRecord{ProductNumber: productNumber}, nil
}

func TestCachedSearcher_Search(t *testing.T) {
	ctx := context.Background()
	filters := domain.SearchFilters{VolumeMin: 700, VolumeMax: 800, Category: "Vin", PageSize: 10}

	t.Run("equivalent queries hit the cache", func(t *testing.T) {
		inner := &countingSearcher{}
		searcher := NewCachedSearcher(inner, newTestCache(t), time.Minute)

		first, err := searcher.Search(ctx, "saint clair", filters)
		require.NoError(t, err)
		second, err := searcher.Search(ctx, "  Saint   CLAIR ", filters)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, inner.searches)
	})

	t.Run("different filters miss", func(t *testing.T) {
		inner := &countingSearcher{}
		searcher := NewCachedSearcher(inner, newTestCache(t), time.Minute)

		_, err := searcher.Search(ctx, "saint clair", filters)
		require.NoError(t, err)
		_, err = searcher.Search(ctx, "saint clair", domain.SearchFilters{PageSize: 10})
		require.NoError(t, err)

		assert.Equal(t, 2, inner.searches)
	})

	t.Run("failures are not cached", func(t *testing.T) {
		inner := &countingSearcher{err: errors.New("503")}
		searcher := NewCachedSearcher(inner, newTestCache(t), time.Minute)

		_, err := searcher.Search(ctx, "saint clair", filters)
		assert.Error(t, err)
		_, err = searcher.Search(ctx, "saint clair", filters)
		assert.Error(t, err)

		assert.Equal(t, 2, inner.searches)
	})

	t.Run("callers cannot mutate cached results", func(t *testing.T) {
		inner := &countingSearcher{}
		searcher := NewCachedSearcher(inner, newTestCache(t), time.Minute)

		first, err := searcher.Search(ctx, "musar", filters)
		require.NoError(t, err)
		first[0].NameBold = "changed"

		second, err := searcher.Search(ctx, "musar", filters)
		require.NoError(t, err)
		assert.Equal(t, "musar", second[0].NameBold)
	})
}

func TestCachedSearcher_GetProduct(t *testing.T) {
	ctx := context.Background()
	inner := &countingSearcher{}
	searcher := NewCachedSearcher(inner, newTestCache(t), 0)

	for i := 0; i < 3; i++ {
		record, err := searcher.GetProduct(ctx, "7421201")
		require.NoError(t, err)
		assert.Equal(t, "7421201", record.ProductNumber)
	}

	assert.Equal(t, 1, inner.lookups)
	assert.Equal(t, defaultSearchTTL, searcher.ttl)
}
