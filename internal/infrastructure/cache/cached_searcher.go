package cache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
)

const defaultSearchTTL = 24 * time.Hour

// CachedSearcher decorates a catalog searcher with a result cache.
// Only successful responses are stored; errors always reach the caller.
type CachedSearcher struct {
	next  domain.CatalogSearcher
	store domain.CacheRepository
	ttl   time.Duration
}

// NewCachedSearcher wraps next with store. A non-positive ttl uses one day.
func NewCachedSearcher(next domain.CatalogSearcher, store domain.CacheRepository, ttl time.Duration) *CachedSearcher {
	if ttl <= 0 {
		ttl = defaultSearchTTL
	}
	return &CachedSearcher{next: next, store: store, ttl: ttl}
}

// Search returns cached records for the same query and filters, else asks the catalog
func (s *CachedSearcher) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.CatalogRecord, error) {
	key := searchKey(query, filters)

	if cached, err := s.store.Get(ctx, key); err == nil {
		if records, ok := cached.([]domain.CatalogRecord); ok {
			zap.L().Debug("catalog cache hit", zap.String("key", key))
			return slices.Clone(records), nil
		}
	}

	records, err := s.next.Search(ctx, query, filters)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, slices.Clone(records), s.ttl); err != nil {
		zap.L().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return records, nil
}

// GetProduct caches single-product lookups by product number
func (s *CachedSearcher) GetProduct(ctx context.Context, productNumber string) (*domain.CatalogRecord, error) {
	key := "product:" + strings.TrimSpace(productNumber)

	if cached, err := s.store.Get(ctx, key); err == nil {
		if record, ok := cached.(domain.CatalogRecord); ok {
			return &record, nil
		}
	}

	record, err := s.next.GetProduct(ctx, productNumber)
	if err != nil {
		return nil, err
	}

	if err := s.store.Set(ctx, key, *record, s.ttl); err != nil {
		zap.L().Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return record, nil
}

// searchKey folds case and whitespace so equivalent queries share an entry
func searchKey(query string, f domain.SearchFilters) string {
	q := strings.Join(strings.Fields(strings.ToLower(query)), " ")
	return fmt.Sprintf("search:%s|%g|%g|%s|%d", q, f.VolumeMin, f.VolumeMax, f.Category, f.PageSize)
}
