package query

import (
	"context"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// GetProductBySlugQuery represents the point lookup by slug
type GetProductBySlugQuery struct {
	Slug string
}

// GetProductBySlugHandler handles the point lookup by slug
type GetProductBySlugHandler struct {
	repo domain.ProductRepository
}

// NewGetProductBySlugHandler creates a new get product by slug handler
func NewGetProductBySlugHandler(repo domain.ProductRepository) *GetProductBySlugHandler {
	return &GetProductBySlugHandler{repo: repo}
}

// Handle returns the non-deleted product carrying the slug.
func (h *GetProductBySlugHandler) Handle(ctx context.Context, q GetProductBySlugQuery) (*domain.Product, error) {
	if q.Slug == "" {
		return nil, domain.ErrNotFound
	}
	return h.repo.FindBySlug(ctx, q.Slug)
}
