package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

// Publisher enqueues notification jobs for asynchronous processing.
type Publisher struct {
	queue  Queue
	logger *logging.Logger
}

// NewPublisher creates a queue-backed publisher.
func NewPublisher(queue Queue, logger *logging.Logger) *Publisher {
	if queue == nil {
		panic("jobs: queue cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		queue:  queue,
		logger: logger,
	}
}

// EnqueueContactSubmitted publishes one notification job for a stored
// submission. It returns once the queue accepts the message.
func (p *Publisher) EnqueueContactSubmitted(ctx context.Context, contact *contacts.Contact) error {
	if contact == nil {
		return errors.New("jobs: contact cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, body, err := encodePayload(queuePayload{
		Kind:    jobTypeContactSubmitted,
		Contact: contact,
	})
	if err != nil {
		return err
	}

	if err := p.queue.Send(ctx, body); err != nil {
		return fmt.Errorf("jobs: failed to enqueue job: %w", err)
	}

	p.logger.Debug("notification job enqueued", "job_id", payload.ID, "kind", payload.Kind, "contact_id", contact.ID)
	return nil
}

// Health reports backend connectivity when the queue supports it.
func (p *Publisher) Health(ctx context.Context) error {
	if hc, ok := p.queue.(healthChecker); ok {
		return hc.Health(ctx)
	}
	return nil
}

var _ contacts.Enqueuer = (*Publisher)(nil)
