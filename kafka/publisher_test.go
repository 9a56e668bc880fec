package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
)

type testEvent struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func TestPublishSendsJSONPayload(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got testEvent
		return json.Unmarshal(val, &got)
	})

	pub := NewPublisherFromProducer(producer)
	defer pub.Close()

	event := testEvent{ID: "abc", Name: "Red Mug", Price: 9.5}
	if err := pub.Publish(context.Background(), "search.product.index", "abc", event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPublishSendFailureSurfaces(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewPublisherFromProducer(producer)
	defer pub.Close()

	if err := pub.Publish(context.Background(), "search.product.index", "abc", testEvent{}); err == nil {
		t.Fatal("expected broker failure to surface to the bus caller")
	}
}

func TestPublishUnmarshalableBodyNeverReachesBroker(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)

	pub := NewPublisherFromProducer(producer)
	defer pub.Close()

	// Channels have no JSON encoding; marshaling fails before any send.
	if err := pub.Publish(context.Background(), "search.product.index", "abc", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}
