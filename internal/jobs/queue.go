package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/hardrock-co/agency-platform/internal/contacts"
)

// Queue is a message transport for deferred jobs. Implemented by MemoryQueue,
// RedisQueue and SQSQueue.
type Queue interface {
	Send(ctx context.Context, body string) error
	Receive(ctx context.Context, maxMessages int, waitSeconds int) ([]queueMessage, error)
	Delete(ctx context.Context, receiptHandle string) error
}

// healthChecker is implemented by backends that can report connectivity.
type healthChecker interface {
	Health(ctx context.Context) error
}

type queueMessage struct {
	ID            string
	Body          string
	ReceiptHandle string
}

type jobType string

const (
	jobTypeContactSubmitted jobType = "contact.submitted.v1"
)

// queuePayload carries a full snapshot of the submission so that the
// notification does not depend on the record still existing.
type queuePayload struct {
	ID      string            `json:"id"`
	Kind    jobType           `json:"kind"`
	Contact *contacts.Contact `json:"contact,omitempty"`
}

func encodePayload(payload queuePayload) (queuePayload, string, error) {
	if payload.ID == "" {
		payload.ID = uuid.NewString()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return queuePayload{}, "", fmt.Errorf("jobs: failed to encode payload: %w", err)
	}

	return payload, string(body), nil
}

func decodePayload(body string) (queuePayload, error) {
	var payload queuePayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return queuePayload{}, fmt.Errorf("jobs: failed to decode payload: %w", err)
	}
	return payload, nil
}
