package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// SearchProductsQuery represents the simple keyword search
type SearchProductsQuery struct {
	Keyword string
}

// SearchProductsHandler handles the simple keyword search
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle returns every matching product without pagination. The keyword is
// matched accent- and case-insensitively against the slug.
func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) ([]domain.Product, error) {
	if q.Keyword == "" {
		return []domain.Product{}, nil
	}
	products, err := h.repo.Search(ctx, q.Keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
