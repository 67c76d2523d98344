package metrics

import "time"

// RecordProviderRun records the outcome and duration of one provider run.
// Status should be one of "success", "config_error" or "transport_error".
func RecordProviderRun(provider, status string, duration time.Duration) {
	ProviderRunsTotal.WithLabelValues(provider, status).Inc()
	ProviderRunDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if status == "success" {
		ProviderLastSuccessTimestamp.WithLabelValues(provider).SetToCurrentTime()
	}
}

// RecordArticlesFetched records the number of raw records a provider returned.
func RecordArticlesFetched(provider string, count int) {
	ArticlesFetchedTotal.WithLabelValues(provider).Add(float64(count))
}

// RecordArticlesStored records the number of records upserted for a provider.
func RecordArticlesStored(provider string, count int) {
	ArticlesStoredTotal.WithLabelValues(provider).Add(float64(count))
}

// RecordArticleSkipped records a single dropped record and why it was dropped.
// Reason should be "malformed" or "persistence_error".
func RecordArticleSkipped(provider, reason string) {
	ArticlesSkippedTotal.WithLabelValues(provider, reason).Inc()
}
