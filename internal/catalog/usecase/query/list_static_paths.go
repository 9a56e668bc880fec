package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// ListStaticPathsHandler projects every non-deleted product down to its
// slug, in the routing-parameter shape static-path consumers expect.
type ListStaticPathsHandler struct {
	repo domain.ProductRepository
}

// NewListStaticPathsHandler creates a new static paths handler
func NewListStaticPathsHandler(repo domain.ProductRepository) *ListStaticPathsHandler {
	return &ListStaticPathsHandler{repo: repo}
}

// Handle returns one routing entry per non-deleted product.
func (h *ListStaticPathsHandler) Handle(ctx context.Context) ([]domain.StaticPath, error) {
	slugs, err := h.repo.ListSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list slugs: %w", err)
	}

	paths := make([]domain.StaticPath, 0, len(slugs))
	for _, s := range slugs {
		paths = append(paths, domain.StaticPath{Params: domain.StaticPathParams{Slug: s}})
	}
	return paths, nil
}
