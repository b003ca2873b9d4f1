package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/winematch/backend/internal/domain"
)

const (
	searchPath         = "/productsearch/search"
	subscriptionHeader = "Ocp-Apim-Subscription-Key"
	wineCategory       = "Vin"
	defaultPageSize    = 10
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond
)

// Options configures the catalog client
type Options struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxAttempts       int
}

// Client handles communication with the retail catalog product-search API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	maxAttempts int
	backoff     time.Duration
}

// NewClient creates a new catalog API client
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 5
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		apiKey:      opts.APIKey,
		baseURL:     opts.BaseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		maxAttempts: opts.MaxAttempts,
		backoff:     defaultBackoff,
	}
}

// exponentialBackoff returns the wait before the given retry attempt (1-based)
func (c *Client) exponentialBackoff(attempt int) time.Duration {
	return c.backoff * time.Duration(1<<(attempt-1))
}

// retryable reports whether a response status is worth another attempt
func retryable(status int) bool {
	return status >= http.StatusInternalServerError || status == http.StatusTooManyRequests
}

// Search runs one text query against the catalog and maps the products it returns.
// A 404 from the API means no products, not an error.
func (c *Client) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.CatalogRecord, error) {
	params := url.Values{}
	params.Set("textQuery", query)
	params.Set("page", "1")
	params.Set("size", strconv.Itoa(pageSize(filters.PageSize)))
	params.Set("sortBy", "Score")
	params.Set("sortDirection", "Ascending")
	if filters.VolumeMin > 0 {
		params.Set("volume.min", formatVolume(filters.VolumeMin))
	}
	if filters.VolumeMax > 0 {
		params.Set("volume.max", formatVolume(filters.VolumeMax))
	}
	if filters.Category != "" {
		params.Set("categoryLevel1", filters.Category)
	}

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	zap.L().Debug("catalog search",
		zap.String("query", query),
		zap.Int("products", len(resp.Products)),
	)
	return mapProducts(resp.Products), nil
}

// GetProduct looks up a single product by its catalog number
func (c *Client) GetProduct(ctx context.Context, productNumber string) (*domain.CatalogRecord, error) {
	params := url.Values{}
	params.Set("textQuery", productNumber)
	params.Set("page", "1")
	params.Set("size", "1")
	params.Set("categoryLevel1", wineCategory)

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}
	if resp != nil {
		for _, p := range resp.Products {
			if string(p.ProductNumber) == productNumber {
				record := mapProduct(p)
				return &record, nil
			}
		}
	}

	return nil, eris.Wrapf(domain.ErrProductNotFound, "product %s", productNumber)
}

// fetch performs the rate-limited GET with retries. It returns nil, nil on 404.
func (c *Client) fetch(ctx context.Context, params url.Values) (*searchResponse, error) {
	reqURL := c.baseURL + searchPath + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.exponentialBackoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, eris.Wrap(err, "rate limiter")
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Warn("catalog request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = eris.Wrap(domain.ErrCatalogAPIFailure, readErr.Error())
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			var parsed searchResponse
			if err := json.Unmarshal(body, &parsed); err != nil {
				return nil, eris.Wrap(domain.ErrCatalogAPIFailure, "decode search response")
			}
			return &parsed, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, nil
		case retryable(resp.StatusCode):
			zap.L().Warn("catalog API error",
				zap.Int("attempt", attempt),
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", body),
			)
			lastErr = eris.Wrapf(domain.ErrCatalogAPIFailure, "status %d", resp.StatusCode)
		default:
			return nil, eris.Wrapf(domain.ErrCatalogAPIFailure, "status %d: %s", resp.StatusCode, body)
		}
	}

	return nil, lastErr
}

// doRequest executes an HTTP GET request with the subscription header
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", "WineMatch/1.0")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(subscriptionHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(domain.ErrCatalogAPIFailure, err.Error())
	}
	return resp, nil
}

func pageSize(n int) int {
	if n <= 0 {
		return defaultPageSize
	}
	return n
}

func formatVolume(ml float64) string {
	return strconv.FormatFloat(ml, 'f', -1, 64)
}
