package events

import (
	"github.com/tair/product-catalog/internal/catalog/domain"
)

// Topics consumed by the downstream services. Create fans out to all four
// downstreams; update and delete notify the search index only.
const (
	TopicSearchIndex  = "search.product.index"
	TopicSearchUpdate = "search.product.update"
	TopicSearchDelete = "search.product.delete"
	TopicBatchCreated = "batch.product.created"
	TopicRateCreated  = "rate.product.created"
	TopicOrderCreated = "order.product.created"
)

// SearchDeletePayload carries only the removed product's id.
type SearchDeletePayload struct {
	ID string `json:"id"`
}

// BatchCreatedPayload mirrors the full product for the inventory-sync
// consumer, keyed by its sync id.
type BatchCreatedPayload struct {
	SyncID string `json:"syncId"`
	domain.Product
}

// RateCreatedPayload seeds the rating service with the created product.
type RateCreatedPayload struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Slug      string  `json:"slug"`
	Image     string  `json:"image"`
}

// OrderCreatedPayload mirrors the created product into the order catalog.
type OrderCreatedPayload struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Slug  string  `json:"slug"`
	Image string  `json:"image"`
	Sale  float64 `json:"sale"`
}

func batchCreated(p *domain.Product) BatchCreatedPayload {
	return BatchCreatedPayload{SyncID: p.ID.Hex(), Product: *p}
}

func rateCreated(p *domain.Product) RateCreatedPayload {
	return RateCreatedPayload{
		ProductID: p.ID.Hex(),
		Name:      p.Name,
		Price:     p.Price,
		Slug:      p.Slug,
		Image:     p.FirstImage(),
	}
}

func orderCreated(p *domain.Product) OrderCreatedPayload {
	return OrderCreatedPayload{
		ID:    p.ID.Hex(),
		Name:  p.Name,
		Price: p.Price,
		Slug:  p.Slug,
		Image: p.FirstImage(),
		Sale:  p.Sale,
	}
}
