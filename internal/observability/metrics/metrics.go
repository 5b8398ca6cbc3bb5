package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "hardrock"

// Metric names read back by the dashboard snapshot.
const (
	SubmissionsMetricName    = namespace + "_contacts_submissions_total"
	NotifyOutcomesMetricName = namespace + "_notify_outcomes_total"
)

// ContactMetrics exposes counters/histograms for the contact intake and
// notification flows.
type ContactMetrics struct {
	submissionsTotal *prometheus.CounterVec
	enqueueFailures  prometheus.Counter
	notifyOutcomes   *prometheus.CounterVec
	taskLatency      *prometheus.HistogramVec
}

func NewContactMetrics(reg prometheus.Registerer) *ContactMetrics {
	m := &ContactMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contacts",
			Name:      "submissions_total",
			Help:      "Contact form submissions by result",
		}, []string{"result"}),
		enqueueFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contacts",
			Name:      "enqueue_failures_total",
			Help:      "Stored submissions whose notification job could not be enqueued",
		}),
		notifyOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "outcomes_total",
			Help:      "Notification side-effect outcomes by channel",
		}, []string{"channel", "status"}),
		taskLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "notify",
			Name:      "task_latency_seconds",
			Help:      "Latency of task-creation API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.enqueueFailures, m.notifyOutcomes, m.taskLatency)
	return m
}

func (m *ContactMetrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(result).Inc()
}

func (m *ContactMetrics) ObserveEnqueueFailure() {
	if m == nil {
		return
	}
	m.enqueueFailures.Inc()
}

func (m *ContactMetrics) ObserveNotifyOutcome(channel, status string) {
	if m == nil {
		return
	}
	m.notifyOutcomes.WithLabelValues(channel, status).Inc()
}

func (m *ContactMetrics) ObserveTaskLatency(status string, seconds float64) {
	if m == nil {
		return
	}
	m.taskLatency.WithLabelValues(status).Observe(seconds)
}
