package command

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
)

// stubRepository implements domain.ProductRepository with overridable
// behavior and recorded inputs.
type stubRepository struct {
	insertFn func(ctx context.Context, p *domain.Product) error
	updateFn func(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)

	insertedProduct *domain.Product
	updatedID       primitive.ObjectID
	updatedPatch    domain.ProductPatch
	deletedID       primitive.ObjectID
}

func (s *stubRepository) Insert(ctx context.Context, p *domain.Product) error {
	s.insertedProduct = p
	if s.insertFn != nil {
		return s.insertFn(ctx, p)
	}
	p.ID = primitive.NewObjectID()
	return nil
}

func (s *stubRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, patch domain.ProductPatch) (*domain.Product, error) {
	s.updatedID = id
	s.updatedPatch = patch
	if s.updateFn != nil {
		return s.updateFn(ctx, id, patch)
	}
	return &domain.Product{ID: id}, nil
}

func (s *stubRepository) SoftDeleteByID(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	s.deletedID = id
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return &domain.Product{ID: id}, nil
}

func (s *stubRepository) FindByID(context.Context, primitive.ObjectID) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepository) FindBySlug(context.Context, string) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepository) FindByIDs(context.Context, []primitive.ObjectID) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubRepository) FindByCategory(context.Context, string, int64) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubRepository) List(context.Context, int64, int64) (*domain.Page, error) {
	return &domain.Page{}, nil
}

func (s *stubRepository) SearchAndFilter(context.Context, domain.Filter) (*domain.Page, error) {
	return &domain.Page{}, nil
}

func (s *stubRepository) Search(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (s *stubRepository) ListSlugs(context.Context) ([]string, error) {
	return nil, nil
}

func (s *stubRepository) Count(context.Context) (int64, error) {
	return 0, nil
}

func (s *stubRepository) CountVisible(context.Context) (int64, error) {
	return 0, nil
}

type publishedEvent struct {
	Topic   string
	Key     string
	Payload interface{}
}

// recordingPublisher captures every emission; topics listed in failing
// return an error.
type recordingPublisher struct {
	published []publishedEvent
	failing   map[string]bool
}

func (p *recordingPublisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	p.published = append(p.published, publishedEvent{Topic: topic, Key: key, Payload: payload})
	if p.failing[topic] {
		return errors.New("broker unreachable")
	}
	return nil
}

func newFanoutWithRecorder() (*events.Fanout, *recordingPublisher) {
	pub := &recordingPublisher{}
	return events.NewFanout(pub), pub
}
