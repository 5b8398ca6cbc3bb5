package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hardrock-co/agency-platform/internal/clickup"
	"github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

type mockEmailSender struct {
	mu   sync.Mutex
	sent []EmailMessage
	err  error
}

func (m *mockEmailSender) Send(_ context.Context, msg EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type mockTaskCreator struct {
	calls  int
	listID string
	req    clickup.TaskRequest
	err    error
}

func (m *mockTaskCreator) CreateTask(_ context.Context, listID string, req clickup.TaskRequest) (*clickup.Task, error) {
	m.calls++
	m.listID = listID
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &clickup.Task{ID: "task-1"}, nil
}

var enabledClickUp = config.ClickUpConfig{APIKey: "pk", ListID: "901"}

func TestProcessorSendsBoth(t *testing.T) {
	email := &mockEmailSender{}
	tasks := &mockTaskCreator{}
	p := NewProcessor(email, tasks, ProcessorConfig{ClickUp: enabledClickUp}, nil, logging.Discard())

	report := p.Process(context.Background(), fullContact())

	assert.Equal(t, StatusSent, report.Email.Status)
	assert.Equal(t, StatusSent, report.Task.Status)
	assert.Equal(t, "task-1", report.Task.Ref)
	require.Len(t, email.sent, 1)
	assert.Equal(t, "sales@hardrock-co.com", email.sent[0].To)
	assert.Equal(t, ContactEmailSubject, email.sent[0].Subject)
	assert.Equal(t, "901", tasks.listID)
	assert.Equal(t, "New Contact: Sara Haddad", tasks.req.Name)
	assert.Equal(t, clickup.PriorityHigh, tasks.req.Priority)
	assert.Equal(t, "to do", tasks.req.Status)
	assert.Equal(t, []string{"Contact Form", "Lead"}, tasks.req.Tags)
}

func TestProcessorEmailFailureDoesNotStopTask(t *testing.T) {
	email := &mockEmailSender{err: errors.New("smtp refused")}
	tasks := &mockTaskCreator{}
	p := NewProcessor(email, tasks, ProcessorConfig{ClickUp: enabledClickUp}, nil, logging.Discard())

	report := p.Process(context.Background(), minimalContact())

	assert.Equal(t, StatusFailed, report.Email.Status)
	assert.EqualError(t, report.Email.Err, "smtp refused")
	assert.Equal(t, StatusSent, report.Task.Status)
	assert.Equal(t, 1, tasks.calls)
}

func TestProcessorSkipsTaskWhenUnconfigured(t *testing.T) {
	email := &mockEmailSender{}
	tasks := &mockTaskCreator{}
	p := NewProcessor(email, tasks, ProcessorConfig{ClickUp: config.ClickUpConfig{APIKey: "pk"}}, nil, logging.Discard())

	assert.False(t, p.TasksEnabled())
	report := p.Process(context.Background(), minimalContact())

	assert.Equal(t, StatusSent, report.Email.Status)
	assert.Equal(t, StatusSkipped, report.Task.Status)
	assert.Equal(t, "ClickUp API key or List ID not configured", report.Task.Reason)
	assert.Zero(t, tasks.calls)
}

func TestProcessorSkipsEmailWithoutSender(t *testing.T) {
	p := NewProcessor(nil, &mockTaskCreator{}, ProcessorConfig{ClickUp: enabledClickUp}, nil, logging.Discard())
	report := p.Process(context.Background(), minimalContact())
	assert.Equal(t, StatusSkipped, report.Email.Status)
	assert.Equal(t, StatusSent, report.Task.Status)
}

func TestProcessorTaskAPIErrorIsHandled(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"err":"boom"}`))
	}))
	defer server.Close()

	client, err := clickup.New(clickup.Config{
		BaseURL:    server.URL,
		APIKey:     "pk",
		MaxRetries: 1,
		Backoff:    time.Millisecond,
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	m := metrics.NewContactMetrics(reg)
	p := NewProcessor(&mockEmailSender{}, client, ProcessorConfig{ClickUp: enabledClickUp}, m, logging.Discard())

	report := p.Process(context.Background(), fullContact())

	assert.Equal(t, StatusSent, report.Email.Status)
	assert.Equal(t, StatusFailed, report.Task.Status)
	assert.Equal(t, http.StatusInternalServerError, report.Task.StatusCode)
	assert.Contains(t, report.Task.Body, "boom")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	var failed float64
	for _, mf := range mfs {
		if mf.GetName() != metrics.NotifyOutcomesMetricName {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["channel"] == ChannelTask && labels["status"] == string(StatusFailed) {
				failed = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), failed)
}

func TestProcessorCustomRecipient(t *testing.T) {
	email := &mockEmailSender{}
	p := NewProcessor(email, nil, ProcessorConfig{Recipient: "leads@hardrock-co.com"}, nil, logging.Discard())
	report := p.Process(context.Background(), &contacts.Contact{ID: "c-3", PersonalName: "Lina Saad", Email: "lina@example.com", PhoneNumber: "1234567"})
	require.True(t, report.Email.OK())
	assert.Equal(t, "leads@hardrock-co.com", email.sent[0].To)
	assert.Equal(t, StatusSkipped, report.Task.Status)
}
