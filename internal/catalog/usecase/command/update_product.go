package command

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
)

// UpdateProductCommand represents the command to partially update a product
type UpdateProductCommand struct {
	ID    string
	Patch domain.ProductPatch
}

// UpdateProductHandler handles the partial product update command
type UpdateProductHandler struct {
	repo   domain.ProductRepository
	fanout *events.Fanout
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, fanout: fanout}
}

// Handle executes the update command. Only fields present in the patch are
// replaced; slug and id are never touched. On success the search index is
// the only downstream notified.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	oid, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	if cmd.Patch.Price != nil && *cmd.Patch.Price < 0 {
		return nil, domain.NewValidationError("price", "cannot be negative")
	}
	if cmd.Patch.Sale != nil && *cmd.Patch.Sale < 0 {
		return nil, domain.NewValidationError("sale", "cannot be negative")
	}
	if cmd.Patch.Name != nil && *cmd.Patch.Name == "" {
		return nil, domain.NewValidationError("name", "cannot be empty")
	}

	product, err := h.repo.UpdateByID(ctx, oid, cmd.Patch)
	if err != nil {
		return nil, err
	}

	// An empty patch mutates nothing, so there is nothing to announce.
	if !cmd.Patch.IsEmpty() {
		h.fanout.ProductUpdated(ctx, product)
	}

	return product, nil
}
