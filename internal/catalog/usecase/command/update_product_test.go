package command

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
)

func TestUpdateProductInvalidID(t *testing.T) {
	repo := &stubRepository{}
	fanout, pub := newFanoutWithRecorder()
	handler := NewUpdateProductHandler(repo, fanout)

	name := "New Name"
	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    "not-a-hex-id",
		Patch: domain.ProductPatch{Name: &name},
	})
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if !repo.updatedID.IsZero() {
		t.Error("store must not be touched for a malformed id")
	}
	if len(pub.published) != 0 {
		t.Error("no events may be emitted for a malformed id")
	}
}

func TestUpdateProductValidation(t *testing.T) {
	negative := -5.0
	empty := ""

	cases := []struct {
		name  string
		patch domain.ProductPatch
	}{
		{"negative price", domain.ProductPatch{Price: &negative}},
		{"negative sale", domain.ProductPatch{Sale: &negative}},
		{"empty name", domain.ProductPatch{Name: &empty}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepository{}
			fanout, _ := newFanoutWithRecorder()
			handler := NewUpdateProductHandler(repo, fanout)

			_, err := handler.Handle(context.Background(), UpdateProductCommand{
				ID:    primitive.NewObjectID().Hex(),
				Patch: tc.patch,
			})
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !repo.updatedID.IsZero() {
				t.Error("store must not be touched on validation failure")
			}
		})
	}
}

func TestUpdateProductPatchPassedThrough(t *testing.T) {
	oid := primitive.NewObjectID()
	name := "Blue Mug"
	price := 12.0

	stored := &domain.Product{ID: oid, Name: name, Price: price, Slug: "red-mug-1700000000000"}
	repo := &stubRepository{
		updateFn: func(context.Context, primitive.ObjectID, domain.ProductPatch) (*domain.Product, error) {
			return stored, nil
		},
	}
	fanout, pub := newFanoutWithRecorder()
	handler := NewUpdateProductHandler(repo, fanout)

	product, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    oid.Hex(),
		Patch: domain.ProductPatch{Name: &name, Price: &price},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.updatedID != oid {
		t.Errorf("expected update on %s, got %s", oid.Hex(), repo.updatedID.Hex())
	}
	if repo.updatedPatch.Name == nil || *repo.updatedPatch.Name != name {
		t.Error("expected name in the forwarded patch")
	}

	// Renaming never recomputes the slug.
	if product.Slug != "red-mug-1700000000000" {
		t.Errorf("slug must be untouched by updates, got %q", product.Slug)
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected a single emission, got %d", len(pub.published))
	}
	if pub.published[0].Topic != events.TopicSearchUpdate {
		t.Errorf("expected %s, got %s", events.TopicSearchUpdate, pub.published[0].Topic)
	}
	if pub.published[0].Key != oid.Hex() {
		t.Errorf("expected key %s, got %s", oid.Hex(), pub.published[0].Key)
	}
}

func TestUpdateProductEmptyPatchEmitsNothing(t *testing.T) {
	oid := primitive.NewObjectID()
	repo := &stubRepository{}
	fanout, pub := newFanoutWithRecorder()
	handler := NewUpdateProductHandler(repo, fanout)

	product, err := handler.Handle(context.Background(), UpdateProductCommand{ID: oid.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product == nil {
		t.Fatal("expected the current product back")
	}
	if len(pub.published) != 0 {
		t.Errorf("an update that mutated nothing must emit nothing, got %d emissions", len(pub.published))
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := &stubRepository{
		updateFn: func(context.Context, primitive.ObjectID, domain.ProductPatch) (*domain.Product, error) {
			return nil, domain.ErrNotFound
		},
	}
	fanout, pub := newFanoutWithRecorder()
	handler := NewUpdateProductHandler(repo, fanout)

	sale := 2.5
	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    primitive.NewObjectID().Hex(),
		Patch: domain.ProductPatch{Sale: &sale},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Error("no events may be emitted for a mutation that did not commit")
	}
}

func TestUpdateProductEmissionFailureInvisibleToCaller(t *testing.T) {
	repo := &stubRepository{}
	pub := &recordingPublisher{failing: map[string]bool{events.TopicSearchUpdate: true}}
	handler := NewUpdateProductHandler(repo, events.NewFanout(pub))

	name := "Still Updated"
	_, err := handler.Handle(context.Background(), UpdateProductCommand{
		ID:    primitive.NewObjectID().Hex(),
		Patch: domain.ProductPatch{Name: &name},
	})
	if err != nil {
		t.Fatalf("emission failure must not surface, got %v", err)
	}
}
