package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/winematch/backend/internal/domain"
	"github.com/winematch/backend/internal/usecase"
)

const (
	serviceName   = "winematch-backend"
	version       = "1.0.0"
	maxBatchItems = 500
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	wineService *usecase.WineService
}

// NewHandler creates a new HTTP handler. A nil service makes the match
// endpoints answer 503.
func NewHandler(wineService *usecase.WineService) *Handler {
	return &Handler{
		wineService: wineService,
	}
}

// BatchRequest is the body of a batch resolve call
type BatchRequest struct {
	Items []domain.ResolveRequest `json:"items" binding:"required,min=1,dive"`
}

// CompareRequest is the body of a pairwise comparison
type CompareRequest struct {
	NameA   string              `json:"name_a" binding:"required"`
	NameB   string              `json:"name_b" binding:"required"`
	Context *domain.PairContext `json:"context,omitempty"`
}

// ScoreRequest is the body of a score explanation call
type ScoreRequest struct {
	NameA    string `json:"name_a" binding:"required"`
	NameB    string `json:"name_b" binding:"required"`
	Winery   string `json:"winery"`
	Producer string `json:"producer"`
}

// StyleRequest is the body of a style simplification call
type StyleRequest struct {
	Style string `json:"style"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": version,
	})
}

// ResolveWine handles single wine resolution requests
func (h *Handler) ResolveWine(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req domain.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.wineService.ResolveWine(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResolveBatch handles ordered batch resolution requests
func (h *Handler) ResolveBatch(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Items) > maxBatchItems {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many items in batch"})
		return
	}

	results, err := h.wineService.ResolveBatch(c.Request.Context(), req.Items)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CompareWines handles pairwise comparison requests
func (h *Handler) CompareWines(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.wineService.CompareWines(c.Request.Context(), req.NameA, req.NameB, req.Context))
}

// ExplainScore returns the lexical score of a pair with its breakdown
func (h *Handler) ExplainScore(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.wineService.ExplainScore(req.NameA, req.NameB, req.Winery, req.Producer))
}

// SimplifyStyle maps a free-text wine style to a basic category
func (h *Handler) SimplifyStyle(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req StyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.wineService.SimplifyStyle(c.Request.Context(), req.Style))
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.wineService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matching service not configured"})
		return false
	}
	return true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		c.Status(499)
	default:
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
}
