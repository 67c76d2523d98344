// Package metrics provides centralized Prometheus metrics for the ingestion pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics track provider runs and article persistence.
var (
	// ProviderRunsTotal counts provider ingestion runs by provider and outcome.
	// Status is one of: success, config_error, transport_error.
	ProviderRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_provider_runs_total",
			Help: "Total number of provider ingestion runs by outcome",
		},
		[]string{"provider", "status"},
	)

	// ArticlesFetchedTotal counts raw records received from each provider.
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_articles_fetched_total",
			Help: "Total number of records fetched from providers",
		},
		[]string{"provider"},
	)

	// ArticlesStoredTotal counts records successfully upserted into the store.
	ArticlesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_articles_stored_total",
			Help: "Total number of articles upserted into the store",
		},
		[]string{"provider"},
	)

	// ArticlesSkippedTotal counts records dropped during ingestion.
	// Reason is one of: malformed, persistence_error.
	ArticlesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_articles_skipped_total",
			Help: "Total number of records skipped during ingestion",
		},
		[]string{"provider", "reason"},
	)

	// ProviderRunDuration measures the duration of one provider's run.
	ProviderRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingest_provider_run_duration_seconds",
			Help:    "Duration of a single provider ingestion run",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"provider"},
	)

	// ProviderLastSuccessTimestamp records when each provider last completed
	// without a provider-level error.
	ProviderLastSuccessTimestamp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ingest_provider_last_success_timestamp",
			Help: "Unix timestamp of the last successful run per provider",
		},
		[]string{"provider"},
	)
)
