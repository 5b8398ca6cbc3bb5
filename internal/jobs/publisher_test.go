package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

type failingQueue struct{ scriptedQueue }

func (f *failingQueue) Send(context.Context, string) error { return errors.New("queue full") }

func (f *failingQueue) Health(context.Context) error { return errors.New("unreachable") }

func TestPublisherEncodesContactJob(t *testing.T) {
	queue := NewMemoryQueue(1)
	publisher := NewPublisher(queue, logging.Discard())

	err := publisher.EnqueueContactSubmitted(context.Background(), &contacts.Contact{ID: "c-9", PersonalName: "Omar Nasser"})
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	msgs, err := queue.Receive(context.Background(), 1, 0)
	if err != nil || len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %v %v", msgs, err)
	}
	payload, err := decodePayload(msgs[0].Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.ID == "" || payload.Kind != jobTypeContactSubmitted || payload.Contact.ID != "c-9" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestPublisherEnqueueErrors(t *testing.T) {
	publisher := NewPublisher(&failingQueue{}, logging.Discard())
	if err := publisher.EnqueueContactSubmitted(context.Background(), &contacts.Contact{ID: "c"}); err == nil {
		t.Fatalf("expected send error")
	}
	if err := publisher.EnqueueContactSubmitted(context.Background(), nil); err == nil {
		t.Fatalf("expected nil contact error")
	}
}

func TestPublisherHealth(t *testing.T) {
	if err := NewPublisher(NewMemoryQueue(1), nil).Health(context.Background()); err != nil {
		t.Fatalf("memory queue should be healthy: %v", err)
	}
	if err := NewPublisher(&failingQueue{}, nil).Health(context.Background()); err == nil {
		t.Fatalf("expected health error to propagate")
	}
}
