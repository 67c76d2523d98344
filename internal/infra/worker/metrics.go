package worker

import (
	"github.com/prometheus/client_golang/prometheus"

	"newswire/internal/pkg/config"
)

// WorkerMetrics tracks scheduled ingestion job health. Metrics are created
// unregistered so tests can construct instances freely; call MustRegister
// once at startup.
type WorkerMetrics struct {
	*config.Metrics

	// CronJobRunsTotal counts scheduled job runs by provider and final
	// status ("success" or "failure", after retries).
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds measures one scheduled run end to end,
	// including retries.
	CronJobDurationSeconds *prometheus.HistogramVec

	// CronJobLastSuccessTimestamp records the Unix timestamp of each
	// provider's last successful scheduled run.
	CronJobLastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics creates the worker metrics set, unregistered.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		Metrics: config.NewMetrics("worker"),

		CronJobRunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of scheduled ingestion runs by provider and status.",
		}, []string{"provider", "status"}),

		CronJobDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of scheduled ingestion runs in seconds.",
			Buckets: []float64{1, 5, 30, 60, 300, 600}, // up to the 10m run timeout
		}, []string{"provider"}),

		CronJobLastSuccessTimestamp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful scheduled run per provider.",
		}, []string{"provider"}),
	}
}

// MustRegister registers all worker metrics with the given registerer.
// It panics on duplicate registration, so call it exactly once.
func (m *WorkerMetrics) MustRegister(reg prometheus.Registerer) {
	collectors := append(m.Metrics.Collectors(),
		m.CronJobRunsTotal,
		m.CronJobDurationSeconds,
		m.CronJobLastSuccessTimestamp,
	)
	reg.MustRegister(collectors...)
}

// RecordJobRun increments the run counter for a provider's final status.
func (m *WorkerMetrics) RecordJobRun(provider, status string) {
	m.CronJobRunsTotal.WithLabelValues(provider, status).Inc()
}

// RecordJobDuration observes one scheduled run's duration.
func (m *WorkerMetrics) RecordJobDuration(provider string, seconds float64) {
	m.CronJobDurationSeconds.WithLabelValues(provider).Observe(seconds)
}

// RecordLastSuccess marks the current time as a provider's last success.
func (m *WorkerMetrics) RecordLastSuccess(provider string) {
	m.CronJobLastSuccessTimestamp.WithLabelValues(provider).SetToCurrentTime()
}
