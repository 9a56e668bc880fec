package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/events"
)

func TestDeleteProductInvalidID(t *testing.T) {
	repo := &stubRepository{}
	fanout, pub := newFanoutWithRecorder()
	handler := NewDeleteProductHandler(repo, fanout)

	_, err := handler.Handle(context.Background(), DeleteProductCommand{ID: "nope"})
	if !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if !repo.deletedID.IsZero() {
		t.Error("store must not be touched for a malformed id")
	}
	if len(pub.published) != 0 {
		t.Error("no events may be emitted for a malformed id")
	}
}

func TestDeleteProductConfirmationAndEmission(t *testing.T) {
	oid := primitive.NewObjectID()
	repo := &stubRepository{}
	fanout, pub := newFanoutWithRecorder()
	handler := NewDeleteProductHandler(repo, fanout)

	msg, err := handler.Handle(context.Background(), DeleteProductCommand{ID: oid.Hex()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := fmt.Sprintf("Product with id(%s) has been deleted", oid.Hex())
	if msg != want {
		t.Errorf("expected confirmation %q, got %q", want, msg)
	}
	if repo.deletedID != oid {
		t.Errorf("expected soft delete on %s, got %s", oid.Hex(), repo.deletedID.Hex())
	}

	if len(pub.published) != 1 {
		t.Fatalf("expected a single emission, got %d", len(pub.published))
	}
	if pub.published[0].Topic != events.TopicSearchDelete {
		t.Errorf("expected %s, got %s", events.TopicSearchDelete, pub.published[0].Topic)
	}
	payload, ok := pub.published[0].Payload.(events.SearchDeletePayload)
	if !ok {
		t.Fatalf("expected id-only payload, got %T", pub.published[0].Payload)
	}
	if payload.ID != oid.Hex() {
		t.Errorf("expected payload id %s, got %s", oid.Hex(), payload.ID)
	}
}

func TestDeleteProductNotFound(t *testing.T) {
	repo := &stubRepository{
		deleteFn: func(context.Context, primitive.ObjectID) (*domain.Product, error) {
			return nil, domain.ErrNotFound
		},
	}
	fanout, pub := newFanoutWithRecorder()
	handler := NewDeleteProductHandler(repo, fanout)

	_, err := handler.Handle(context.Background(), DeleteProductCommand{ID: primitive.NewObjectID().Hex()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Error("no events may be emitted for a mutation that did not commit")
	}
}

func TestDeleteProductEmissionFailureInvisibleToCaller(t *testing.T) {
	repo := &stubRepository{}
	pub := &recordingPublisher{failing: map[string]bool{events.TopicSearchDelete: true}}
	handler := NewDeleteProductHandler(repo, events.NewFanout(pub))

	if _, err := handler.Handle(context.Background(), DeleteProductCommand{ID: primitive.NewObjectID().Hex()}); err != nil {
		t.Fatalf("emission failure must not surface, got %v", err)
	}
}
