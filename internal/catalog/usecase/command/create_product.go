package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
	"github.com/tair/product-catalog/pkg/slug"
)

// CreateProductCommand represents the command to create a new product
type CreateProductCommand struct {
	Name                      string
	ProductCode               string
	Price                     float64
	Sale                      float64
	Images                    []string
	SupplierID                string
	Specifications            map[string]domain.SpecValue
	Description               string
	AcceptableExpiryThreshold *int
	CategoryID                string
	Show                      *bool
}

// CreateProductHandler handles product creation and drives the creation
// fan-out once the store has committed.
type CreateProductHandler struct {
	repo   domain.ProductRepository
	fanout *events.Fanout
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository, fanout *events.Fanout) *CreateProductHandler {
	return &CreateProductHandler{repo: repo, fanout: fanout}
}

// Handle executes the create product command. Validation failures are
// rejected before the store is touched; a persisted product is always
// eligible for emission, and emission failures never surface here.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	if cmd.ProductCode == "" {
		return nil, domain.NewValidationError("product_code", "is required")
	}
	if cmd.CategoryID == "" {
		return nil, domain.NewValidationError("category_id", "is required")
	}
	if cmd.Price < 0 {
		return nil, domain.NewValidationError("price", "cannot be negative")
	}
	if cmd.Sale < 0 {
		return nil, domain.NewValidationError("sale", "cannot be negative")
	}

	expiry := domain.DefaultExpiryThreshold
	if cmd.AcceptableExpiryThreshold != nil {
		expiry = *cmd.AcceptableExpiryThreshold
	}

	show := true
	if cmd.Show != nil {
		show = *cmd.Show
	}

	images := cmd.Images
	if images == nil {
		images = []string{}
	}

	product := &domain.Product{
		Name:                      cmd.Name,
		ProductCode:               cmd.ProductCode,
		Price:                     cmd.Price,
		Sale:                      cmd.Sale,
		Images:                    images,
		SupplierID:                cmd.SupplierID,
		Specifications:            cmd.Specifications,
		Description:               cmd.Description,
		AcceptableExpiryThreshold: expiry,
		CategoryID:                cmd.CategoryID,
		Slug:                      slug.Make(cmd.Name),
		Show:                      show,
	}

	if err := h.repo.Insert(ctx, product); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrCreationFailed, err)
	}

	h.fanout.ProductCreated(ctx, product)

	return product, nil
}
