package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/http/handlers"
	httpmiddleware "github.com/hardrock-co/agency-platform/internal/http/middleware"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

const defaultContactRateLimit = 5

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ContactsHandler    *contacts.Handler
	DashboardContacts  *handlers.DashboardContactsHandler
	DashboardOverview  *handlers.DashboardOverviewHandler
	HealthHandler      http.Handler
	MetricsHandler     http.Handler
	HTTPMetrics        httpmiddleware.RequestObserver
	StaffJWTSecret     string
	CORSAllowedOrigins []string

	// Requests per minute per client on POST /contact. Zero means the default of 5.
	ContactRateLimitPerMinute int

	// TrustProxyHeaders installs chi RealIP so the client address comes from
	// X-Forwarded-For / X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	if cfg.HTTPMetrics != nil {
		r.Use(httpmiddleware.HTTPMetrics(cfg.HTTPMetrics))
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		if cfg.HealthHandler != nil {
			public.Handle("/health", cfg.HealthHandler)
		} else {
			public.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"status":"ok"}`))
			})
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.ContactsHandler != nil {
			limit := cfg.ContactRateLimitPerMinute
			if limit <= 0 {
				limit = defaultContactRateLimit
			}
			public.With(httpmiddleware.RateLimit(limit)).Post("/contact", cfg.ContactsHandler.Submit)
		}
	})

	// Staff dashboard
	if cfg.DashboardContacts != nil || cfg.DashboardOverview != nil {
		r.Route("/dashboard", func(dashboard chi.Router) {
			dashboard.Use(httpmiddleware.StaffJWT(cfg.StaffJWTSecret))
			dashboard.Use(noStore)

			if cfg.DashboardOverview != nil {
				dashboard.Get("/", cfg.DashboardOverview.GetOverview)
			}
			if cfg.DashboardContacts != nil {
				dashboard.Get("/contacts", cfg.DashboardContacts.List)
				dashboard.Delete("/contacts/{id}", cfg.DashboardContacts.Delete)
			}
		})
	}

	return r
}
