package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// FindProductsByIDsQuery represents the batch point lookup
type FindProductsByIDsQuery struct {
	IDs []string
}

// FindProductsByIDsHandler handles the batch point lookup
type FindProductsByIDsHandler struct {
	repo domain.ProductRepository
}

// NewFindProductsByIDsHandler creates a new batch lookup handler
func NewFindProductsByIDsHandler(repo domain.ProductRepository) *FindProductsByIDsHandler {
	return &FindProductsByIDsHandler{repo: repo}
}

// Handle returns the subset of ids resolving to existing non-deleted
// products. Malformed ids are skipped; no matches is not an error.
func (h *FindProductsByIDsHandler) Handle(ctx context.Context, q FindProductsByIDsQuery) ([]domain.Product, error) {
	oids := make([]primitive.ObjectID, 0, len(q.IDs))
	for _, id := range q.IDs {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	return h.repo.FindByIDs(ctx, oids)
}
