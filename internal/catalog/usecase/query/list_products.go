package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// ListProductsQuery represents the paginated plain listing
type ListProductsQuery struct {
	Page  int64
	Limit int64
}

// ListProductsHandler handles the paginated plain listing
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle returns one page of all non-deleted products in the store's
// natural order. Page defaults to 1 and limit to 10 when unspecified.
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*domain.Page, error) {
	page, err := h.repo.List(ctx, q.Page, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}
