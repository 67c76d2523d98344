// The worker ingests articles from the configured news providers on their
// cron cadences and exposes health and metrics endpoints.
//
// Usage:
//
//	worker               run the scheduler (default)
//	worker -once all     run every provider once and exit
//	worker -once newsapi run one provider once and exit
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	pgRepo "newswire/internal/infra/adapter/persistence/postgres"
	"newswire/internal/infra/db"
	"newswire/internal/infra/provider"
	workerPkg "newswire/internal/infra/worker"
	"newswire/internal/observability/logging"
	"newswire/internal/usecase/ingest"
)

func main() {
	once := flag.String("once", "", "run one ingestion pass for a provider (or \"all\") and exit")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister(prometheus.DefaultRegisterer)

	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("timezone", cfg.Timezone),
		slog.String("newsapi_schedule", cfg.NewsAPISchedule),
		slog.String("guardian_schedule", cfg.GuardianSchedule),
		slog.String("nytimes_schedule", cfg.NYTimesSchedule),
		slog.Duration("run_timeout", cfg.RunTimeout),
		slog.Int("max_attempts", cfg.MaxAttempts))

	svc := setupIngestService(database, logger)

	if *once != "" {
		runOnce(ctx, logger, svc, cfg, workerMetrics, *once)
		return
	}

	scheduler, err := workerPkg.NewScheduler(cfg, svc, workerMetrics, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	if err := scheduler.RegisterJobs(); err != nil {
		logger.Error("failed to register ingestion jobs", slog.Any("error", err))
		os.Exit(1)
	}

	startMetricsServer(ctx, logger, cfg.MetricsPort)

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	scheduler.Start()
	healthServer.SetReady(true)
	logger.Info("worker started")

	// Block until shutdown is requested, then let running jobs drain.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	healthServer.SetReady(false)
	<-scheduler.Stop().Done()
	cancel()
	logger.Info("worker stopped")
}

// initDatabase opens the connection pool and applies the schema.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database schema up to date")
	return database
}

// setupIngestService wires the provider clients and the article store into
// the ingestion service.
func setupIngestService(database *sql.DB, logger *slog.Logger) *ingest.Service {
	artRepo := pgRepo.NewArticleRepo(database)
	httpClient := provider.NewHTTPClient()

	providers := []ingest.Provider{
		provider.NewNewsAPI(provider.LoadNewsAPIConfig(), httpClient),
		provider.NewGuardian(provider.LoadGuardianConfig(), httpClient),
		provider.NewNYTimes(provider.LoadNYTimesConfig(), httpClient),
	}
	return ingest.NewService(providers, artRepo, logger)
}

// runOnce executes a single ingestion pass outside the scheduler.
func runOnce(ctx context.Context, logger *slog.Logger, svc *ingest.Service, cfg *workerPkg.WorkerConfig, metrics *workerPkg.WorkerMetrics, target string) {
	if target == "all" {
		runCtx, cancel := context.WithTimeout(ctx, cfg.RunTimeout)
		defer cancel()

		stats := svc.RunAll(runCtx)
		logger.Info("one-shot ingestion finished",
			slog.String("run_id", stats.RunID),
			slog.Int("stored", stats.Stored()),
			slog.Int("failed_providers", len(stats.Failed())))
		if len(stats.Failed()) > 0 {
			os.Exit(1)
		}
		return
	}

	scheduler, err := workerPkg.NewScheduler(cfg, svc, metrics, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	scheduler.RunJob(target)
}
