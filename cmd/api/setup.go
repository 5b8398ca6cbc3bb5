package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hardrock-co/agency-platform/cmd/mainconfig"
	"github.com/hardrock-co/agency-platform/internal/app/bootstrap"
	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/http/handlers"
	"github.com/hardrock-co/agency-platform/internal/jobs"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func setupMetrics(reg *prometheus.Registry) (http.Handler, *metrics.ContactMetrics, *metrics.HTTPMetrics) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	contactMetrics := metrics.NewContactMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), contactMetrics, httpMetrics
}

// contactStore bundles the repository with the dashboard aggregate reader
// over the same backing storage.
type contactStore struct {
	Repository contacts.Repository
	Overview   handlers.OverviewStore
	pool       *pgxpool.Pool
	db         *sql.DB
}

func (s *contactStore) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *contactStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// connectPostgresPool returns a nil pool only when no URL is configured.
func connectPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("reach postgres: %w", err)
	}
	return pool, nil
}

// setupContactStore uses the in-memory repository only when DATABASE_URL is
// empty. A configured but unreachable database is an error.
func setupContactStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*contactStore, error) {
	pool, err := connectPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if pool == nil {
		logger.Warn("DATABASE_URL not set; using in-memory contact store")
		repo := contacts.NewInMemoryRepository()
		return &contactStore{
			Repository: repo,
			Overview:   handlers.NewRepositoryOverviewStore(repo),
		}, nil
	}
	db := stdlib.OpenDBFromPool(pool)
	logger.Info("using postgres contact store")
	return &contactStore{
		Repository: contacts.NewPostgresRepository(pool),
		Overview:   handlers.NewSQLOverviewStore(db),
		pool:       pool,
		db:         db,
	}, nil
}

func healthChecks(store *contactStore, publisher *jobs.Publisher) map[string]handlers.HealthCheck {
	checks := map[string]handlers.HealthCheck{
		"queue": publisher.Health,
	}
	if store.pool != nil {
		checks["database"] = store.Ping
	}
	return checks
}

// awsLoader loads the SDK config on first use so memory/redis deployments
// without AWS credentials never touch it.
func awsLoader(cfg *appconfig.Config) bootstrap.AWSConfigLoader {
	var (
		once   sync.Once
		awsCfg aws.Config
		err    error
	)
	return func(ctx context.Context) (aws.Config, error) {
		once.Do(func() {
			awsCfg, err = mainconfig.LoadAWSConfig(ctx, cfg)
		})
		return awsCfg, err
	}
}
