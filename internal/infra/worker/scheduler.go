package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newswire/internal/resilience/retry"
	"newswire/internal/usecase/ingest"
)

// IngestRunner is the slice of the ingestion service the scheduler needs.
type IngestRunner interface {
	RunProvider(ctx context.Context, name string) (ingest.ProviderResult, error)
}

// Scheduler drives per-provider ingestion on cron cadences. Each job gets a
// bounded run timeout and re-attempts transport failures up to the configured
// cap; configuration failures are logged once and left for the next cycle.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *WorkerConfig
	runner   IngestRunner
	metrics  *WorkerMetrics
	logger   *slog.Logger
	retryCfg retry.Config
}

// NewScheduler creates a scheduler in the configured timezone. Jobs are not
// registered yet; call RegisterJobs then Start.
func NewScheduler(cfg *WorkerConfig, runner IngestRunner, metrics *WorkerMetrics, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	retryCfg := retry.ScheduledRunConfig()
	retryCfg.MaxAttempts = cfg.MaxAttempts

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		cfg:      cfg,
		runner:   runner,
		metrics:  metrics,
		logger:   logger,
		retryCfg: retryCfg,
	}, nil
}

// RegisterJobs adds one cron entry per provider.
func (s *Scheduler) RegisterJobs() error {
	jobs := []struct {
		provider string
		schedule string
	}{
		{"newsapi", s.cfg.NewsAPISchedule},
		{"guardian", s.cfg.GuardianSchedule},
		{"nytimes", s.cfg.NYTimesSchedule},
	}

	for _, job := range jobs {
		provider := job.provider
		if _, err := s.cron.AddFunc(job.schedule, func() { s.RunJob(provider) }); err != nil {
			return fmt.Errorf("register %s job (%q): %w", provider, job.schedule, err)
		}
		s.logger.Info("ingestion job registered",
			slog.String("provider", provider),
			slog.String("schedule", job.schedule))
	}
	return nil
}

// RunJob executes one provider's ingestion with the scheduling-level retry
// policy. It is the body of each cron entry and is also invoked directly for
// run-once mode.
func (s *Scheduler) RunJob(provider string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RunTimeout)
	defer cancel()

	start := time.Now()
	err := retry.WithBackoff(ctx, s.retryCfg, func() error {
		result, err := s.runner.RunProvider(ctx, provider)
		if err != nil {
			return err
		}
		if result.Err == nil {
			return nil
		}

		kind := ingest.Classify(result.Err)
		if kind == ingest.KindTransport {
			// Eligible for another attempt within this invocation.
			return result.Err
		}

		// Configuration errors won't heal by retrying; wait for the next
		// cron cycle (or an operator).
		s.logger.Warn("provider run failed, not retrying",
			slog.String("provider", provider),
			slog.String("kind", string(kind)),
			slog.String("error", result.Err.Error()))
		return nil
	})

	duration := time.Since(start)
	s.metrics.RecordJobDuration(provider, duration.Seconds())

	if err != nil {
		s.metrics.RecordJobRun(provider, "failure")
		s.logger.Error("scheduled ingestion failed",
			slog.String("provider", provider),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return
	}

	s.metrics.RecordJobRun(provider, "success")
	s.metrics.RecordLastSuccess(provider)
	s.logger.Info("scheduled ingestion completed",
		slog.String("provider", provider),
		slog.Duration("duration", duration))
}

// Start begins cron scheduling in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started",
		slog.String("timezone", s.cfg.Timezone),
		slog.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the cron scheduler and returns a context that is done when all
// running jobs have completed.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries exposes the registered cron entries, mainly for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}
