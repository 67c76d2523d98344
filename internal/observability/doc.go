// Package observability provides the observability infrastructure for the
// ingestion pipeline: structured logging and Prometheus metrics.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//
// Example usage:
//
//	import (
//	    "newswire/internal/observability/logging"
//	    "newswire/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("worker started")
//
//	    metrics.RecordArticlesStored("newsapi", 10)
//	}
package observability
