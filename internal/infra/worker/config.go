// Package worker provides the scheduled ingestion runtime: per-provider cron
// jobs, configuration with fail-open fallback, health endpoints and job
// metrics.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newswire/internal/pkg/config"
)

// WorkerConfig holds the configuration for the worker component.
// All fields have defaults and validation rules; invalid environment values
// fall back to defaults so a typo never keeps the worker down.
type WorkerConfig struct {
	// Timezone is the IANA timezone name used for cron scheduling.
	// Default: "UTC"
	Timezone string

	// NewsAPISchedule is the cron expression for the NewsAPI ingestion job.
	// Default: "30 5 * * *" (daily at 05:30)
	NewsAPISchedule string

	// GuardianSchedule is the cron expression for the Guardian ingestion job.
	// Default: "0 8 * * 1" (Mondays at 08:00)
	GuardianSchedule string

	// NYTimesSchedule is the cron expression for the NYTimes ingestion job.
	// Default: "0 12 * * 5" (Fridays at 12:00)
	NYTimesSchedule string

	// RunTimeout is the maximum duration for a single scheduled ingestion
	// run, including its retries. Default: 10 minutes.
	RunTimeout time.Duration

	// MaxAttempts caps how many times one scheduled invocation re-attempts
	// a provider run that failed with a transport error. Range: 1-10.
	// Default: 3.
	MaxAttempts int

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535. Default: 9091.
	HealthPort int

	// MetricsPort is the port for the Prometheus metrics HTTP server.
	// Range: 1024-65535. Default: 9092.
	MetricsPort int
}

// DefaultConfig returns a WorkerConfig with production defaults. The
// schedules stagger the three providers: NewsAPI daily, Guardian weekly on
// Monday mornings, NYTimes weekly on Friday noons.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		Timezone:         "UTC",
		NewsAPISchedule:  "30 5 * * *",
		GuardianSchedule: "0 8 * * 1",
		NYTimesSchedule:  "0 12 * * 5",
		RunTimeout:       10 * time.Minute,
		MaxAttempts:      3,
		HealthPort:       9091,
		MetricsPort:      9092,
	}
}

// Validate checks all configuration values, collecting every failure rather
// than stopping at the first.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	for _, s := range []struct {
		name  string
		value string
	}{
		{"newsapi schedule", c.NewsAPISchedule},
		{"guardian schedule", c.GuardianSchedule},
		{"nytimes schedule", c.NYTimesSchedule},
	} {
		if err := config.ValidateCronSchedule(s.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	if err := config.ValidatePositiveDuration(c.RunTimeout); err != nil {
		errs = append(errs, fmt.Errorf("run timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.MaxAttempts, 1, 10); err != nil {
		errs = append(errs, fmt.Errorf("max attempts: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.MetricsPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from environment
// variables with fail-open fallback: every invalid value is replaced by its
// default, logged and counted in metrics. The returned configuration is
// always valid.
//
// Environment variables:
//   - WORKER_TIMEZONE: IANA timezone name
//   - NEWSAPI_CRON_SCHEDULE, GUARDIAN_CRON_SCHEDULE, NYTIMES_CRON_SCHEDULE:
//     5-field cron expressions
//   - INGEST_RUN_TIMEOUT: duration string, e.g. "10m" (1m-4h)
//   - INGEST_MAX_ATTEMPTS: integer 1-10
//   - WORKER_HEALTH_PORT, WORKER_METRICS_PORT: integer 1024-65535
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()

	loadString := func(envKey, field string, target *string, validator func(string) error) {
		result := config.LoadEnvWithFallback(envKey, *target, validator)
		*target = result.Value.(string)
		recordFallback(logger, metrics, field, result)
	}
	loadInt := func(envKey, field string, target *int, validator func(int) error) {
		result := config.LoadEnvInt(envKey, *target, validator)
		*target = result.Value.(int)
		recordFallback(logger, metrics, field, result)
	}

	loadString("WORKER_TIMEZONE", "timezone", &cfg.Timezone, config.ValidateTimezone)
	loadString("NEWSAPI_CRON_SCHEDULE", "newsapi_schedule", &cfg.NewsAPISchedule, config.ValidateCronSchedule)
	loadString("GUARDIAN_CRON_SCHEDULE", "guardian_schedule", &cfg.GuardianSchedule, config.ValidateCronSchedule)
	loadString("NYTIMES_CRON_SCHEDULE", "nytimes_schedule", &cfg.NYTimesSchedule, config.ValidateCronSchedule)

	result := config.LoadEnvDuration("INGEST_RUN_TIMEOUT", cfg.RunTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.RunTimeout = result.Value.(time.Duration)
	recordFallback(logger, metrics, "run_timeout", result)

	loadInt("INGEST_MAX_ATTEMPTS", "max_attempts", &cfg.MaxAttempts, func(v int) error {
		return config.ValidateIntRange(v, 1, 10)
	})
	loadInt("WORKER_HEALTH_PORT", "health_port", &cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	loadInt("WORKER_METRICS_PORT", "metrics_port", &cfg.MetricsPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})

	if metrics != nil {
		metrics.RecordLoadTimestamp()
	}
	return &cfg
}

func recordFallback(logger *slog.Logger, metrics *WorkerMetrics, field string, result config.LoadResult) {
	if !result.FallbackApplied {
		return
	}
	if metrics != nil {
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
	}
	for _, warning := range result.Warnings {
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
}
