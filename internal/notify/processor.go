package notify

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hardrock-co/agency-platform/internal/clickup"
	"github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

var tracer = otel.Tracer("hardrock.notify")

const (
	taskStatus          = "to do"
	taskNotConfigured   = "ClickUp API key or List ID not configured"
	emailNotConfigured  = "email sender not configured"
	defaultRecipient    = "sales@hardrock-co.com"
	defaultRecipientTag = "HardRock Sales"
)

var taskTags = []string{"Contact Form", "Lead"}

// TaskCreator creates the follow-up task for a submission.
type TaskCreator interface {
	CreateTask(ctx context.Context, listID string, req clickup.TaskRequest) (*clickup.Task, error)
}

// ProcessorConfig holds the recipient and task-list settings.
type ProcessorConfig struct {
	Recipient     string
	RecipientName string
	ClickUp       config.ClickUpConfig
}

// Processor runs the notification unit for one submission: an operator email
// and a follow-up task. The two steps run independently and neither
// failure is returned to the caller.
type Processor struct {
	email     EmailSender
	tasks     TaskCreator
	listID    string
	recipient string
	toName    string
	metrics   *metrics.ContactMetrics
	logger    *logging.Logger
}

// NewProcessor wires the unit. Task creation is disabled for the life of the
// processor when the ClickUp credentials are incomplete or tasks is nil.
func NewProcessor(email EmailSender, tasks TaskCreator, cfg ProcessorConfig, m *metrics.ContactMetrics, logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Recipient == "" {
		cfg.Recipient = defaultRecipient
	}
	if cfg.RecipientName == "" {
		cfg.RecipientName = defaultRecipientTag
	}
	p := &Processor{
		email:     email,
		recipient: cfg.Recipient,
		toName:    cfg.RecipientName,
		metrics:   m,
		logger:    logger,
	}
	if tasks != nil && cfg.ClickUp.Enabled() {
		p.tasks = tasks
		p.listID = cfg.ClickUp.ListID
	} else {
		logger.Warn("notify: " + taskNotConfigured)
	}
	if email == nil {
		logger.Warn("notify: " + emailNotConfigured)
	}
	return p
}

// TasksEnabled reports whether task creation is configured.
func (p *Processor) TasksEnabled() bool { return p.tasks != nil }

// Process sends the email, then creates the task, and reports both outcomes.
func (p *Processor) Process(ctx context.Context, contact *contacts.Contact) Report {
	ctx, span := tracer.Start(ctx, "notify.process")
	defer span.End()
	span.SetAttributes(attribute.String("contacts.id", contact.ID))

	report := Report{
		ContactID: contact.ID,
		Email:     p.sendEmail(ctx, contact),
		Task:      p.createTask(ctx, contact),
	}
	for _, outcome := range report.Outcomes() {
		if outcome.Err != nil {
			span.RecordError(outcome.Err)
		}
		span.SetAttributes(attribute.String("notify."+outcome.Channel, string(outcome.Status)))
		p.record(contact.ID, outcome)
	}
	return report
}

func (p *Processor) sendEmail(ctx context.Context, contact *contacts.Contact) Outcome {
	outcome := Outcome{Channel: ChannelEmail}
	if p.email == nil {
		outcome.Status = StatusSkipped
		outcome.Reason = emailNotConfigured
		return outcome
	}
	msg, err := RenderContactEmail(contact, p.recipient, p.toName)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	if err := p.email.Send(ctx, msg); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}
	outcome.Status = StatusSent
	outcome.Ref = p.recipient
	return outcome
}

func (p *Processor) createTask(ctx context.Context, contact *contacts.Contact) Outcome {
	outcome := Outcome{Channel: ChannelTask}
	if p.tasks == nil {
		outcome.Status = StatusSkipped
		outcome.Reason = taskNotConfigured
		return outcome
	}

	start := time.Now()
	task, err := p.tasks.CreateTask(ctx, p.listID, clickup.TaskRequest{
		Name:        TaskTitle(contact),
		Description: TaskDescription(contact),
		Priority:    clickup.PriorityHigh,
		Status:      taskStatus,
		Tags:        taskTags,
	})
	elapsed := time.Since(start).Seconds()
	if err != nil {
		p.metrics.ObserveTaskLatency("error", elapsed)
		outcome.Status = StatusFailed
		outcome.Err = err
		var apiErr *clickup.APIError
		if errors.As(err, &apiErr) {
			outcome.StatusCode = apiErr.StatusCode
			outcome.Body = apiErr.Body
		}
		return outcome
	}
	p.metrics.ObserveTaskLatency("ok", elapsed)
	outcome.Status = StatusSent
	outcome.Ref = task.ID
	return outcome
}

func (p *Processor) record(contactID string, o Outcome) {
	p.metrics.ObserveNotifyOutcome(o.Channel, string(o.Status))
	args := []any{"contact_id", contactID, "channel", o.Channel, "status", string(o.Status)}
	if o.Ref != "" {
		args = append(args, "ref", o.Ref)
	}
	if o.StatusCode != 0 {
		args = append(args, "status_code", o.StatusCode, "body", o.Body)
	}
	if o.Reason != "" {
		args = append(args, "reason", o.Reason)
	}
	switch o.Status {
	case StatusFailed:
		p.logger.Error("notify: side effect failed", append(args, "error", o.Err)...)
	case StatusSkipped:
		p.logger.Warn("notify: side effect skipped", args...)
	default:
		p.logger.Info("notify: side effect completed", args...)
	}
}
