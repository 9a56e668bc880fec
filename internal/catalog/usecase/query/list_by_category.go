package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// Category listings are capped; the main page never shows more.
const categoryPageSize = 10

// ListByCategoryQuery represents the per-category listing
type ListByCategoryQuery struct {
	CategoryID string
}

// ListByCategoryHandler handles the per-category listing
type ListByCategoryHandler struct {
	repo domain.ProductRepository
}

// NewListByCategoryHandler creates a new list by category handler
func NewListByCategoryHandler(repo domain.ProductRepository) *ListByCategoryHandler {
	return &ListByCategoryHandler{repo: repo}
}

// Handle returns the newest visible products of one category.
func (h *ListByCategoryHandler) Handle(ctx context.Context, q ListByCategoryQuery) ([]domain.Product, error) {
	if q.CategoryID == "" {
		return nil, domain.NewValidationError("category_id", "is required")
	}
	products, err := h.repo.FindByCategory(ctx, q.CategoryID, categoryPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}
