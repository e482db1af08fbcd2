package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/medrec/backend/internal/domain"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Engine is the recommendation engine surface the HTTP layer consumes.
type Engine interface {
	Recommend(ctx context.Context, query string, maxProducts int) (*domain.Recommendation, error)
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) (map[string]int, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	engine       Engine
	provider     domain.ProductProvider
	defaultLimit int
}

// NewHandler creates a new HTTP handler
func NewHandler(engine Engine, provider domain.ProductProvider, limit int) *Handler {
	if limit < 1 {
		limit = defaultLimit
	}
	return &Handler{
		engine:       engine,
		provider:     provider,
		defaultLimit: limit,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	count := 0
	if products, err := h.engine.Products(c.Request.Context()); err == nil {
		count = len(products)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "medrec-backend",
		"version":        "1.0.0",
		"products_count": count,
	})
}

// Recommend handles GET /recommend?input=...&limit=...
func (h *Handler) Recommend(c *gin.Context) {
	query := strings.TrimSpace(c.Query("input"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing required parameter 'input'",
			"code":    "MISSING_PARAMETER",
			"example": "/api/v1/recommend?input=cukrzyca",
		})
		return
	}

	limit := h.parseLimit(c.Query("limit"))

	recommendation, err := h.engine.Recommend(c.Request.Context(), query, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// Products handles GET /products
func (h *Handler) Products(c *gin.Context) {
	products, err := h.engine.Products(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(products),
		"products": products,
	})
}

// Categories handles GET /categories
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.engine.Categories(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(categories),
		"categories": categories,
	})
}

// Refresh handles POST /refresh and bypasses the cache TTL.
func (h *Handler) Refresh(c *gin.Context) {
	ok := h.provider.ForceRefresh(c.Request.Context())

	status := http.StatusOK
	if !ok {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": ok})
}

// parseLimit falls back to the configured default for missing or
// out-of-range values rather than rejecting the request.
func (h *Handler) parseLimit(raw string) int {
	if raw == "" {
		return h.defaultLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 || limit > maxLimit {
		return h.defaultLimit
	}
	return limit
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "INVALID_QUERY",
		})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": err.Error(),
			"code":  "CATALOG_UNAVAILABLE",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal error",
			"code":  "INTERNAL_ERROR",
		})
	}
}
