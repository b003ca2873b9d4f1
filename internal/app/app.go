// Package app wires configuration into the matching stack shared by the
// HTTP server and the command-line tool.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/winematch/backend/config"
	httpDelivery "github.com/winematch/backend/internal/delivery/http"
	"github.com/winematch/backend/internal/domain"
	"github.com/winematch/backend/internal/infrastructure/cache"
	"github.com/winematch/backend/internal/infrastructure/catalog"
	"github.com/winematch/backend/internal/infrastructure/judge"
	"github.com/winematch/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired wine service and the resources it owns
type App struct {
	Service *usecase.WineService
	cache   *cache.MemoryCache
}

// New builds the catalog client, cache, judge and use cases from cfg
func New(cfg *config.Config) (*App, error) {
	var searcher domain.CatalogSearcher = catalog.NewClient(catalog.Options{
		APIKey:            cfg.Catalog.APIKey,
		BaseURL:           cfg.Catalog.BaseURL,
		Timeout:           cfg.Catalog.Timeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
		MaxAttempts:       cfg.Catalog.MaxAttempts,
	})
	if cfg.Catalog.APIKey == "" {
		zap.L().Warn("catalog subscription key not configured; requests may be rejected",
			zap.String("base_url", cfg.Catalog.BaseURL))
	}

	a := &App{}
	if cfg.Cache.Type == "memory" {
		a.cache = cache.NewMemoryCache()
		searcher = cache.NewCachedSearcher(searcher, a.cache, cfg.Cache.TTL)
	}

	verified, err := usecase.LoadVerifiedMatches(cfg.Matching.VerifiedFile)
	if err != nil {
		a.Close()
		return nil, eris.Wrap(err, "load verified matches")
	}

	semanticJudge, err := judge.New(judgeOptions(cfg.Judge))
	if err != nil {
		a.Close()
		return nil, eris.Wrap(err, "init judge")
	}

	matcher := usecase.NewMatchingService(searcher, verified, cfg.MatchConfig())
	a.Service = usecase.NewWineService(
		matcher,
		usecase.NewPairClassifier(semanticJudge, cfg.Judge.Timeout),
		usecase.NewStyleSimplifier(semanticJudge, cfg.Judge.Timeout),
		usecase.WineServiceConfig{
			ResolveThreshold: cfg.Decision.ResolveThreshold,
			CompareThreshold: cfg.Decision.CompareThreshold,
			BatchConcurrency: cfg.Batch.Concurrency,
		},
	)

	zap.L().Info("wine service ready",
		zap.String("judge", cfg.Judge.Provider),
		zap.String("cache", cfg.Cache.Type),
		zap.Int("verified_matches", verified.Len()),
		zap.Float64("resolve_threshold", cfg.Decision.ResolveThreshold),
		zap.Float64("compare_threshold", cfg.Decision.CompareThreshold),
	)

	return a, nil
}

func judgeOptions(cfg config.JudgeConfig) judge.Options {
	return judge.Options{
		Provider:   cfg.Provider,
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		BaseURL:    cfg.BaseURL,
		MaxTokens:  cfg.MaxTokens,
		MaxRetries: cfg.MaxRetries,
		Timeout:    cfg.Timeout,
	}
}

// Close releases background resources
func (a *App) Close() {
	if a.cache != nil {
		a.cache.Close()
	}
}

// Serve runs the HTTP API on cfg.Server.Port until ctx is done, then shuts down gracefully
func (a *App) Serve(ctx context.Context, cfg *config.Config) error {
	router := httpDelivery.SetupRouter(cfg, httpDelivery.NewHandler(a.Service))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return eris.Wrap(err, "server listen")
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return eris.Wrap(err, "server shutdown")
	}
	return nil
}
