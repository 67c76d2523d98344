package config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_RecordFallback(t *testing.T) {
	m := NewMetrics("test")

	m.RecordFallback("cron_schedule")
	m.RecordFallback("cron_schedule")
	m.RecordValidationError("timezone")

	if got := testutil.ToFloat64(m.FallbacksTotal.WithLabelValues("cron_schedule")); got != 2 {
		t.Errorf("fallbacks for cron_schedule = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.FallbackActive.WithLabelValues("cron_schedule")); got != 1 {
		t.Errorf("fallback active for cron_schedule = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ValidationErrorsTotal.WithLabelValues("timezone")); got != 1 {
		t.Errorf("validation errors for timezone = %v, want 1", got)
	}
}

func TestMetrics_Collectors(t *testing.T) {
	m := NewMetrics("test")
	reg := prometheus.NewRegistry()

	reg.MustRegister(m.Collectors()...)

	m.RecordLoadTimestamp()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	if len(families) == 0 {
		t.Error("expected gathered metric families")
	}
}
