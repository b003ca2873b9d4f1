package domain

import "github.com/rotisserie/eris"

var (
	// ErrProductNotFound is returned when the catalog has no product for a lookup
	ErrProductNotFound = eris.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = eris.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = eris.New("cache miss")

	// ErrCatalogAPIFailure is returned when a catalog search request fails
	ErrCatalogAPIFailure = eris.New("catalog API request failed")

	// ErrJudgeUnavailable is returned when the semantic judge cannot be reached
	ErrJudgeUnavailable = eris.New("semantic judge unavailable")

	// ErrJudgeResponse is returned when the judge output violates the verdict contract
	ErrJudgeResponse = eris.New("malformed semantic judge response")
)
