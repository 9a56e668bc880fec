package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// FilterProductsQuery represents the keyword/filter search
type FilterProductsQuery struct {
	Filter domain.Filter
}

// FilterProductsHandler handles the keyword/filter search
type FilterProductsHandler struct {
	repo domain.ProductRepository
}

// NewFilterProductsHandler creates a new filter products handler
func NewFilterProductsHandler(repo domain.ProductRepository) *FilterProductsHandler {
	return &FilterProductsHandler{repo: repo}
}

// Handle compiles the filter into a store query and returns one fixed-size
// page. Absent or invalid constraints are dropped, never rejected.
func (h *FilterProductsHandler) Handle(ctx context.Context, q FilterProductsQuery) (*domain.Page, error) {
	page, err := h.repo.SearchAndFilter(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return page, nil
}
