package worker

import (
	"log/slog"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.NewsAPISchedule != "30 5 * * *" {
		t.Errorf("NewsAPISchedule = %q, want %q", cfg.NewsAPISchedule, "30 5 * * *")
	}
	if cfg.GuardianSchedule != "0 8 * * 1" {
		t.Errorf("GuardianSchedule = %q, want %q", cfg.GuardianSchedule, "0 8 * * 1")
	}
	if cfg.NYTimesSchedule != "0 12 * * 5" {
		t.Errorf("NYTimesSchedule = %q, want %q", cfg.NYTimesSchedule, "0 12 * * 5")
	}
	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.RunTimeout != 10*time.Minute {
		t.Errorf("RunTimeout = %v, want 10m", cfg.RunTimeout)
	}
}

func TestWorkerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkerConfig)
		wantErr bool
	}{
		{"defaults are valid", func(c *WorkerConfig) {}, false},
		{"bad timezone", func(c *WorkerConfig) { c.Timezone = "Moon/Base" }, true},
		{"bad newsapi schedule", func(c *WorkerConfig) { c.NewsAPISchedule = "often" }, true},
		{"bad guardian schedule", func(c *WorkerConfig) { c.GuardianSchedule = "" }, true},
		{"zero timeout", func(c *WorkerConfig) { c.RunTimeout = 0 }, true},
		{"attempts too high", func(c *WorkerConfig) { c.MaxAttempts = 50 }, true},
		{"privileged health port", func(c *WorkerConfig) { c.HealthPort = 80 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("WORKER_TIMEZONE", "America/New_York")
	t.Setenv("NEWSAPI_CRON_SCHEDULE", "0 6 * * *")
	t.Setenv("GUARDIAN_CRON_SCHEDULE", "")
	t.Setenv("NYTIMES_CRON_SCHEDULE", "")
	t.Setenv("INGEST_RUN_TIMEOUT", "30m")
	t.Setenv("INGEST_MAX_ATTEMPTS", "5")
	t.Setenv("WORKER_HEALTH_PORT", "")
	t.Setenv("WORKER_METRICS_PORT", "")

	cfg := LoadConfigFromEnv(slog.Default(), NewWorkerMetrics())

	if cfg.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want override", cfg.Timezone)
	}
	if cfg.NewsAPISchedule != "0 6 * * *" {
		t.Errorf("NewsAPISchedule = %q, want override", cfg.NewsAPISchedule)
	}
	if cfg.GuardianSchedule != "0 8 * * 1" {
		t.Errorf("GuardianSchedule = %q, want default", cfg.GuardianSchedule)
	}
	if cfg.RunTimeout != 30*time.Minute {
		t.Errorf("RunTimeout = %v, want 30m", cfg.RunTimeout)
	}
	if cfg.MaxAttempts != 5 {
		t.Errorf("MaxAttempts = %d, want 5", cfg.MaxAttempts)
	}
}

func TestLoadConfigFromEnv_FallsBackOnInvalid(t *testing.T) {
	t.Setenv("WORKER_TIMEZONE", "Moon/Base")
	t.Setenv("NEWSAPI_CRON_SCHEDULE", "every day at dawn")
	t.Setenv("GUARDIAN_CRON_SCHEDULE", "")
	t.Setenv("NYTIMES_CRON_SCHEDULE", "")
	t.Setenv("INGEST_RUN_TIMEOUT", "yesterday")
	t.Setenv("INGEST_MAX_ATTEMPTS", "0")
	t.Setenv("WORKER_HEALTH_PORT", "")
	t.Setenv("WORKER_METRICS_PORT", "")

	cfg := LoadConfigFromEnv(slog.Default(), NewWorkerMetrics())

	defaults := DefaultConfig()
	if cfg.Timezone != defaults.Timezone {
		t.Errorf("Timezone = %q, want default %q", cfg.Timezone, defaults.Timezone)
	}
	if cfg.NewsAPISchedule != defaults.NewsAPISchedule {
		t.Errorf("NewsAPISchedule = %q, want default", cfg.NewsAPISchedule)
	}
	if cfg.RunTimeout != defaults.RunTimeout {
		t.Errorf("RunTimeout = %v, want default", cfg.RunTimeout)
	}
	if cfg.MaxAttempts != defaults.MaxAttempts {
		t.Errorf("MaxAttempts = %d, want default", cfg.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("fallback config must validate, got %v", err)
	}
}
