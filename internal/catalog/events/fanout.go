package events

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/pkg/logger"
)

// Publisher is the publish-only event bus the fan-out writes to. No
// delivery confirmation is consumed.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

var emitFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_event_emit_failures_total",
		Help: "Total number of failed catalog event emissions, per topic",
	},
	[]string{"topic"},
)

func init() {
	prometheus.MustRegister(emitFailures)
}

// Fanout notifies the downstream services of catalog changes. Emission is
// fire-and-forget: the persisted mutation is never rolled back, a failed
// emission never blocks the remaining ones, and no error reaches the
// caller. Each failure is logged and counted instead of discarded.
//
// Only the search-index downstream hears about updates and deletes; the
// batch, rate and order downstreams consume creations only.
type Fanout struct {
	pub Publisher
}

func NewFanout(pub Publisher) *Fanout {
	return &Fanout{pub: pub}
}

// ProductCreated emits the four creation projections in fixed order:
// search index, inventory sync, rating seed, order catalog mirror.
func (f *Fanout) ProductCreated(ctx context.Context, p *domain.Product) {
	key := p.ID.Hex()
	f.emit(ctx, TopicSearchIndex, key, p)
	f.emit(ctx, TopicBatchCreated, key, batchCreated(p))
	f.emit(ctx, TopicRateCreated, key, rateCreated(p))
	f.emit(ctx, TopicOrderCreated, key, orderCreated(p))
}

// ProductUpdated emits the full updated product to the search index.
func (f *Fanout) ProductUpdated(ctx context.Context, p *domain.Product) {
	f.emit(ctx, TopicSearchUpdate, p.ID.Hex(), p)
}

// ProductDeleted emits the removed id to the search index.
func (f *Fanout) ProductDeleted(ctx context.Context, id string) {
	f.emit(ctx, TopicSearchDelete, id, SearchDeletePayload{ID: id})
}

func (f *Fanout) emit(ctx context.Context, topic, key string, payload interface{}) {
	if err := f.pub.Publish(ctx, topic, key, payload); err != nil {
		emitFailures.WithLabelValues(topic).Inc()
		logger.Warn(ctx).
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Event emission failed")
	}
}
