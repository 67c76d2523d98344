// Package ingest provides the use case for pulling articles from every
// configured news provider, normalizing them and upserting them into the
// article store. Failure isolation is total: a provider's error never stops
// its siblings, and a record's error never stops the rest of its batch.
package ingest

import (
	"errors"

	"newswire/internal/domain/entity"
	"newswire/internal/resilience/retry"
)

// Sentinel errors for ingestion operations.
var (
	// ErrMissingAPIKey indicates that a provider has no API key configured.
	// The adapter short-circuits without a network call; the provider is
	// skipped for this run and the condition is logged, not fatal.
	ErrMissingAPIKey = errors.New("provider API key is not configured")

	// ErrFetchFailed indicates that the provider's HTTP call failed, either
	// at the transport level or with a non-success status. The wrapped error
	// carries the status code and response body when available.
	ErrFetchFailed = errors.New("provider fetch failed")

	// ErrUnknownProvider indicates a run was requested for a provider name
	// that is not registered with the orchestrator.
	ErrUnknownProvider = errors.New("unknown provider")
)

// ErrorKind classifies an ingestion error for logging, metrics and the
// scheduling layer's retry decision.
type ErrorKind string

const (
	KindNone          ErrorKind = "none"
	KindConfiguration ErrorKind = "config_error"
	KindTransport     ErrorKind = "transport_error"
	KindMalformed     ErrorKind = "malformed"
	KindPersistence   ErrorKind = "persistence_error"
)

// Classify maps an error to its ErrorKind. Only transport errors are
// eligible for scheduling-level retries; configuration errors persist until
// an operator fixes the deployment and malformed/persistence errors are
// record-scoped.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrMissingAPIKey):
		return KindConfiguration
	case errors.Is(err, entity.ErrValidationFailed):
		return KindMalformed
	case errors.Is(err, ErrFetchFailed):
		return KindTransport
	}

	var httpErr *retry.HTTPError
	if errors.As(err, &httpErr) {
		return KindTransport
	}

	return KindPersistence
}
