package contacts

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

var tracer = otel.Tracer("hardrock.contacts")

// Submission results recorded in metrics.
const (
	ResultAccepted = "accepted"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

// Enqueuer hands a stored contact to the notification pipeline. It must return
// without waiting for the notification to run.
type Enqueuer interface {
	EnqueueContactSubmitted(ctx context.Context, contact *Contact) error
}

// Service runs the intake path: validate, store, enqueue.
type Service struct {
	repo     Repository
	enqueuer Enqueuer
	metrics  *metrics.ContactMetrics
	logger   *logging.Logger
}

// NewService wires the intake path. metrics may be nil.
func NewService(repo Repository, enqueuer Enqueuer, m *metrics.ContactMetrics, logger *logging.Logger) *Service {
	if repo == nil {
		panic("contacts: repository required")
	}
	if enqueuer == nil {
		panic("contacts: enqueuer required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, enqueuer: enqueuer, metrics: m, logger: logger}
}

// Submit validates input, stores it and schedules the notification. A failure
// to enqueue is logged and counted; the stored submission still succeeds.
func (s *Service) Submit(ctx context.Context, input map[string]any, locale Locale) (*Contact, error) {
	ctx, span := tracer.Start(ctx, "contacts.submit")
	defer span.End()

	start := time.Now()
	draft, err := Validate(input, locale)
	validated := time.Now()
	if err != nil {
		s.metrics.ObserveSubmission(ResultInvalid)
		span.SetAttributes(attribute.String("contacts.result", ResultInvalid))
		s.logger.Info("contact submission rejected", "error", err, "validation_ms", validated.Sub(start).Milliseconds())
		return nil, err
	}

	contact, err := s.repo.Create(ctx, draft)
	stored := time.Now()
	if err != nil {
		s.metrics.ObserveSubmission(ResultError)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		s.logger.Error("contact submission store failed", "error", err, "insert_ms", stored.Sub(validated).Milliseconds())
		return nil, fmt.Errorf("contacts: submit: %w", err)
	}
	span.SetAttributes(attribute.String("contacts.id", contact.ID))

	if err := s.enqueuer.EnqueueContactSubmitted(ctx, contact); err != nil {
		s.metrics.ObserveEnqueueFailure()
		span.RecordError(err)
		s.logger.Error("contact notification enqueue failed", "contact_id", contact.ID, "error", err)
	}
	dispatched := time.Now()

	s.metrics.ObserveSubmission(ResultAccepted)
	span.SetAttributes(attribute.String("contacts.result", ResultAccepted))
	s.logger.Info("contact submission stored",
		"contact_id", contact.ID,
		"validation_ms", validated.Sub(start).Milliseconds(),
		"insert_ms", stored.Sub(validated).Milliseconds(),
		"dispatch_ms", dispatched.Sub(stored).Milliseconds(),
		"total_ms", dispatched.Sub(start).Milliseconds(),
	)
	return contact, nil
}

// List returns stored contacts newest first.
func (s *Service) List(ctx context.Context) ([]*Contact, error) {
	return s.repo.List(ctx)
}

// Delete removes a contact; ErrContactNotFound when it does not exist.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("contact deleted", "contact_id", id)
	return nil
}
