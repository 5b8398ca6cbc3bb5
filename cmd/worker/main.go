package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hardrock-co/agency-platform/cmd/mainconfig"
	"github.com/hardrock-co/agency-platform/internal/app/bootstrap"
	appconfig "github.com/hardrock-co/agency-platform/internal/config"
	"github.com/hardrock-co/agency-platform/internal/observability/metrics"
	"github.com/hardrock-co/agency-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Info("starting contact notification worker",
		"env", cfg.Env,
		"queue_backend", cfg.QueueBackend,
		"workers", cfg.WorkerCount,
	)

	if cfg.QueueBackend == bootstrap.QueueBackendMemory {
		logger.Error("memory queue runs inside the api process; set QUEUE_BACKEND=redis or sqs for a standalone worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	contactMetrics := metrics.NewContactMetrics(reg)

	var (
		once   sync.Once
		awsCfg aws.Config
		awsErr error
	)
	loadAWS := func(ctx context.Context) (aws.Config, error) {
		once.Do(func() { awsCfg, awsErr = mainconfig.LoadAWSConfig(ctx, cfg) })
		return awsCfg, awsErr
	}

	queue, err := bootstrap.BuildQueue(ctx, cfg, loadAWS, logger)
	if err != nil {
		logger.Error("failed to build notification queue", "error", err)
		os.Exit(1)
	}
	processor, err := bootstrap.BuildProcessor(ctx, cfg, loadAWS, contactMetrics, logger)
	if err != nil {
		logger.Error("failed to build notification processor", "error", err)
		os.Exit(1)
	}

	worker := bootstrap.BuildWorker(processor, queue, cfg, logger)
	worker.Start(ctx)

	// Liveness and metrics for the orchestrator.
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("worker http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	worker.Wait()
	logger.Info("worker stopped")
}
