package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/hardrock-co/agency-platform/internal/access"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

const (
	recentContactsLimit = 5
	newContactsWindow   = 7 * 24 * time.Hour
)

// RecentContact is the short form shown on the overview.
type RecentContact struct {
	ID           string    `json:"id"`
	PersonalName string    `json:"personalName"`
	Email        string    `json:"email"`
	Services     []string  `json:"services"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContactOverview is the aggregate read from storage.
type ContactOverview struct {
	Total               int             `json:"totalContacts"`
	NewContactsThisWeek int             `json:"newContactsThisWeek"`
	Recent              []RecentContact `json:"recentContacts"`
}

// IntakeSnapshot summarizes process-local counters since start.
type IntakeSnapshot struct {
	Submissions   map[string]int64 `json:"submissions"`
	Notifications map[string]int64 `json:"notifications"`
}

// DashboardOverviewResponse is the body of GET /dashboard.
type DashboardOverviewResponse struct {
	ContactOverview
	Intake IntakeSnapshot `json:"intake"`
}

// OverviewStore computes the contact aggregates.
type OverviewStore interface {
	Overview(ctx context.Context, since time.Time, limit int) (ContactOverview, error)
}

// SQLOverviewStore reads aggregates from the contacts table.
type SQLOverviewStore struct {
	db *sql.DB
}

func NewSQLOverviewStore(db *sql.DB) *SQLOverviewStore {
	return &SQLOverviewStore{db: db}
}

func (s *SQLOverviewStore) Overview(ctx context.Context, since time.Time, limit int) (ContactOverview, error) {
	var out ContactOverview
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE created_at >= $1)
		FROM contacts
	`, since).Scan(&out.Total, &out.NewContactsThisWeek)
	if err != nil {
		return out, fmt.Errorf("handlers: count contacts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, personal_name, email, services, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return out, fmt.Errorf("handlers: recent contacts: %w", err)
	}
	defer rows.Close()

	out.Recent = []RecentContact{}
	for rows.Next() {
		var rc RecentContact
		var services []string
		if err := rows.Scan(&rc.ID, &rc.PersonalName, &rc.Email, pq.Array(&services), &rc.CreatedAt); err != nil {
			return out, fmt.Errorf("handlers: scan recent contact: %w", err)
		}
		if services == nil {
			services = []string{}
		}
		rc.Services = services
		out.Recent = append(out.Recent, rc)
	}
	if err := rows.Err(); err != nil {
		return out, fmt.Errorf("handlers: recent contacts: %w", err)
	}
	return out, nil
}

// RepositoryOverviewStore derives aggregates from a contacts.Repository. Used
// when no SQL database is configured.
type RepositoryOverviewStore struct {
	repo contacts.Repository
}

func NewRepositoryOverviewStore(repo contacts.Repository) *RepositoryOverviewStore {
	return &RepositoryOverviewStore{repo: repo}
}

func (s *RepositoryOverviewStore) Overview(ctx context.Context, since time.Time, limit int) (ContactOverview, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return ContactOverview{}, err
	}
	out := ContactOverview{Total: len(list), Recent: []RecentContact{}}
	for i, c := range list {
		if !c.CreatedAt.Before(since) {
			out.NewContactsThisWeek++
		}
		if i < limit {
			out.Recent = append(out.Recent, RecentContact{
				ID:           c.ID,
				PersonalName: c.PersonalName,
				Email:        c.Email,
				Services:     c.Services,
				CreatedAt:    c.CreatedAt,
			})
		}
	}
	return out, nil
}

// DashboardOverviewHandler serves the staff dashboard landing data.
type DashboardOverviewHandler struct {
	store    OverviewStore
	gatherer prometheus.Gatherer
	logger   *logging.Logger
	now      func() time.Time
}

func NewDashboardOverviewHandler(store OverviewStore, gatherer prometheus.Gatherer, logger *logging.Logger) *DashboardOverviewHandler {
	if logger == nil {
		logger = logging.Default()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &DashboardOverviewHandler{
		store:    store,
		gatherer: gatherer,
		logger:   logger,
		now:      time.Now,
	}
}

// GetOverview returns totals, new-this-week and the most recent submissions.
// GET /dashboard
func (h *DashboardOverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	if _, err := access.RequireView(r.Context()); err != nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	overview, err := h.store.Overview(r.Context(), h.now().Add(-newContactsWindow), recentContactsLimit)
	if err != nil {
		h.logger.Error("failed to load dashboard overview", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}

	writeJSON(w, http.StatusOK, DashboardOverviewResponse{
		ContactOverview: overview,
		Intake:          snapshotIntake(h.gatherer),
	})
}

func snapshotIntake(gatherer prometheus.Gatherer) IntakeSnapshot {
	out := IntakeSnapshot{
		Submissions:   map[string]int64{},
		Notifications: map[string]int64{},
	}
	mfs, err := gatherer.Gather()
	if err != nil {
		return out
	}

	for _, mf := range mfs {
		if mf == nil {
			continue
		}
		switch mf.GetName() {
		case metrics.SubmissionsMetricName:
			for _, metric := range mf.Metric {
				if metric == nil || metric.GetCounter() == nil {
					continue
				}
				out.Submissions[labelValue(metric, "result")] += int64(metric.GetCounter().GetValue())
			}
		case metrics.NotifyOutcomesMetricName:
			for _, metric := range mf.Metric {
				if metric == nil || metric.GetCounter() == nil {
					continue
				}
				key := labelValue(metric, "channel") + "_" + labelValue(metric, "status")
				out.Notifications[key] += int64(metric.GetCounter().GetValue())
			}
		}
	}
	return out
}

func labelValue(metric *dto.Metric, name string) string {
	for _, lp := range metric.Label {
		if lp == nil {
			continue
		}
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
