package config

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks configuration loading health per component, so operators
// can alert on a worker silently running on fallback defaults.
type Metrics struct {
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        *prometheus.GaugeVec
	LoadTimestamp         prometheus.Gauge
}

// NewMetrics creates configuration metrics for the named component.
// The caller registers them via Collectors.
func NewMetrics(componentName string) *Metrics {
	labels := prometheus.Labels{"component": componentName}

	return &Metrics{
		ValidationErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "config_validation_errors_total",
				Help:        "Total number of configuration validation errors.",
				ConstLabels: labels,
			},
			[]string{"field"},
		),
		FallbacksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "config_fallbacks_total",
				Help:        "Total number of configuration fallbacks applied.",
				ConstLabels: labels,
			},
			[]string{"field"},
		),
		FallbackActive: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "config_fallback_active",
				Help:        "Whether a configuration fallback is currently active (1) or not (0).",
				ConstLabels: labels,
			},
			[]string{"field"},
		),
		LoadTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "config_load_timestamp_seconds",
				Help:        "Unix timestamp of the last configuration load.",
				ConstLabels: labels,
			},
		),
	}
}

// Collectors returns all metrics for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.ValidationErrorsTotal,
		m.FallbacksTotal,
		m.FallbackActive,
		m.LoadTimestamp,
	}
}

// RecordLoadTimestamp marks the moment configuration was (re)loaded.
func (m *Metrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a validation failure for the given field.
func (m *Metrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts a fallback applied for the given field and marks it
// active.
func (m *Metrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
	m.FallbackActive.WithLabelValues(field).Set(1)
}
