package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hardrock-co/agency-platform/internal/api/router"
	"github.com/hardrock-co/agency-platform/internal/app/bootstrap"
	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/contacts"
	"github.com/hardrock-co/agency-platform/internal/http/handlers"
	"github.com/hardrock-co/agency-platform/internal/jobs"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("starting hardrock agency API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"queue_backend", cfg.QueueBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metricsHandler, contactMetrics, httpMetrics := setupMetrics(reg)
	loadAWS := awsLoader(cfg)

	// Storage
	store, err := setupContactStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect contact store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// Deferred notifications
	queue, err := bootstrap.BuildQueue(ctx, cfg, loadAWS, logger)
	if err != nil {
		logger.Error("failed to build notification queue", "error", err)
		os.Exit(1)
	}
	publisher := jobs.NewPublisher(queue, logger)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()
	var worker *jobs.Worker
	if cfg.QueueBackend == bootstrap.QueueBackendMemory {
		processor, err := bootstrap.BuildProcessor(ctx, cfg, loadAWS, contactMetrics, logger)
		if err != nil {
			logger.Error("failed to build notification processor", "error", err)
			os.Exit(1)
		}
		worker = bootstrap.BuildWorker(processor, queue, cfg, logger)
		worker.Start(workerCtx)
		logger.Info("in-process notification worker started", "workers", cfg.WorkerCount)
	}

	// Initialize handlers
	service := contacts.NewService(store.Repository, publisher, contactMetrics, logger)
	routerCfg := &router.Config{
		Logger:                    logger,
		ContactsHandler:           contacts.NewHandler(service, logger),
		DashboardContacts:         handlers.NewDashboardContactsHandler(service, logger),
		DashboardOverview:         handlers.NewDashboardOverviewHandler(store.Overview, reg, logger),
		HealthHandler:             handlers.NewHealthHandler(healthChecks(store, publisher), logger),
		MetricsHandler:            metricsHandler,
		HTTPMetrics:               httpMetrics,
		StaffJWTSecret:            cfg.StaffJWTSecret,
		CORSAllowedOrigins:        cfg.CORSAllowedOrigins,
		ContactRateLimitPerMinute: cfg.ContactRateLimitPerMinute,
		TrustProxyHeaders:         cfg.TrustProxyHeaders,
	}
	if cfg.StaffJWTSecret == "" {
		logger.Warn("STAFF_JWT_SECRET not set; dashboard requests will be rejected")
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// Queued notifications already received finish before exit.
	cancelWorker()
	if worker != nil {
		worker.Wait()
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
