package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultExpiryThreshold is the day-count sentinel applied when a product is
// created without an explicit threshold. 100 years, effectively "never".
const DefaultExpiryThreshold = 100 * 365

// Product represents the catalog aggregate
type Product struct {
	ID                        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name                      string               `json:"name" bson:"name"`
	ProductCode               string               `json:"product_code" bson:"product_code"`
	Price                     float64              `json:"price" bson:"price"`
	Sale                      float64              `json:"sale" bson:"sale"`
	Images                    []string             `json:"images" bson:"images"`
	SupplierID                string               `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	Specifications            map[string]SpecValue `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Description               string               `json:"description,omitempty" bson:"description,omitempty"`
	AcceptableExpiryThreshold int                  `json:"acceptable_expiry_threshold" bson:"acceptable_expiry_threshold"`
	CategoryID                string               `json:"category_id" bson:"category_id"`
	Slug                      string               `json:"slug" bson:"slug"`
	Show                      bool                 `json:"show" bson:"show"`
	CreatedAt                 time.Time            `json:"created_at" bson:"created_at"`
	DeletedAt                 *time.Time           `json:"-" bson:"deleted_at,omitempty"`
}

// FirstImage returns the leading image reference, or empty when none exist.
// Downstream projections carry only this one.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductPatch carries a partial field replacement for Update. Nil fields
// are left untouched. Slug, ID and CreatedAt are never patchable.
type ProductPatch struct {
	Name                      *string               `json:"name,omitempty"`
	ProductCode               *string               `json:"product_code,omitempty"`
	Price                     *float64              `json:"price,omitempty"`
	Sale                      *float64              `json:"sale,omitempty"`
	Images                    *[]string             `json:"images,omitempty"`
	SupplierID                *string               `json:"supplier_id,omitempty"`
	Specifications            *map[string]SpecValue `json:"specifications,omitempty"`
	Description               *string               `json:"description,omitempty"`
	AcceptableExpiryThreshold *int                  `json:"acceptable_expiry_threshold,omitempty"`
	CategoryID                *string               `json:"category_id,omitempty"`
	Show                      *bool                 `json:"show,omitempty"`
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.ProductCode == nil && p.Price == nil &&
		p.Sale == nil && p.Images == nil && p.SupplierID == nil &&
		p.Specifications == nil && p.Description == nil &&
		p.AcceptableExpiryThreshold == nil && p.CategoryID == nil && p.Show == nil
}

// SortOrder selects the ordering of a filtered search.
type SortOrder string

const (
	SortLatest    SortOrder = "latest"
	SortSales     SortOrder = "sales"
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

// Filter is the transport-agnostic search and filter request. Absent or
// invalid numeric inputs mean "no constraint", never an error.
type Filter struct {
	Page       int64
	Keyword    string
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	OrderBy    SortOrder
}

// Page is the pagination envelope returned by listing operations.
type Page struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int64     `json:"page"`
	Limit int64     `json:"limit"`
	Pages int64     `json:"pages"`
}

// StaticPath wraps a product slug in the routing-parameter shape consumed
// by static-path generation.
type StaticPath struct {
	Params StaticPathParams `json:"params"`
}

type StaticPathParams struct {
	Slug string `json:"slug"`
}

// Stats summarizes the catalog for the stats query.
type Stats struct {
	Total   int64 `json:"total"`
	Visible int64 `json:"visible"`
}

// ProductRepository defines the contract for catalog data access. All reads
// exclude soft-deleted products.
type ProductRepository interface {
	Insert(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID string, limit int64) ([]Product, error)
	List(ctx context.Context, page, limit int64) (*Page, error)
	SearchAndFilter(ctx context.Context, filter Filter) (*Page, error)
	Search(ctx context.Context, keyword string) ([]Product, error)
	ListSlugs(ctx context.Context) ([]string, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, patch ProductPatch) (*Product, error)
	SoftDeleteByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	Count(ctx context.Context) (int64, error)
	CountVisible(ctx context.Context) (int64, error)
}
