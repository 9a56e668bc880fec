package command

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
)

// DeleteProductCommand represents the command to soft-delete a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles the soft-delete command
type DeleteProductHandler struct {
	repo   domain.ProductRepository
	fanout *events.Fanout
}

// NewDeleteProductHandler creates a new delete product handler
func NewDeleteProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, fanout: fanout}
}

// Handle marks the product soft-deleted; the record stays in the store for
// audit but becomes invisible to every read. Returns a human-readable
// confirmation. The search index is the only downstream notified.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProductCommand) (string, error) {
	oid, err := primitive.ObjectIDFromHex(cmd.ID)
	if err != nil {
		return "", domain.ErrInvalidID
	}

	if _, err := h.repo.SoftDeleteByID(ctx, oid); err != nil {
		return "", err
	}

	h.fanout.ProductDeleted(ctx, cmd.ID)

	return fmt.Sprintf("Product with id(%s) has been deleted", cmd.ID), nil
}
