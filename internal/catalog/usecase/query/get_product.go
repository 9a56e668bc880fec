package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// GetProductQuery represents the point lookup by id
type GetProductQuery struct {
	ID string
}

// GetProductHandler handles the point lookup by id
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle validates the identifier format before any store access and
// returns the matching non-deleted product.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(q.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return h.repo.FindByID(ctx, oid)
}
