package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CatalogSearcher defines the interface for the retail catalog search provider
type CatalogSearcher interface {
	Search(ctx context.Context, query string, filters SearchFilters) ([]CatalogRecord, error)
	GetProduct(ctx context.Context, productNumber string) (*CatalogRecord, error)
}

// SemanticJudge defines the interface for the language-model judge.
// Judge returns the raw model text; callers parse it defensively.
type SemanticJudge interface {
	Judge(ctx context.Context, prompt string) (string, error)
}
