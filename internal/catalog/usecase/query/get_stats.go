package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// GetStatsHandler handles the catalog statistics query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle returns total and visible product counts.
func (h *GetStatsHandler) Handle(ctx context.Context) (*domain.Stats, error) {
	total, err := h.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	visible, err := h.repo.CountVisible(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count visible products: %w", err)
	}
	return &domain.Stats{Total: total, Visible: visible}, nil
}
