// Package provider implements the upstream news API clients (NewsAPI,
// The Guardian, The New York Times). Each client maps one provider's wire
// format to entity.NormalizedArticle and carries its own rate limiter and
// circuit breaker.
package provider

import (
	"net/http"
	"time"

	"newswire/pkg/config"
)

const (
	// defaultFetchLimit caps the number of records requested per run.
	defaultFetchLimit = 20

	defaultHTTPTimeout = 15 * time.Second
)

// Config holds the settings for one provider client.
type Config struct {
	// APIKey authenticates against the provider. An empty key makes the
	// client short-circuit without a network call.
	APIKey string

	// BaseURL is the provider's API root, overridable for tests.
	BaseURL string

	// Limit is the maximum number of records requested per fetch.
	Limit int
}

// NewHTTPClient returns the HTTP client shared by all provider adapters.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: defaultHTTPTimeout,
	}
}

// LoadNewsAPIConfig loads the NewsAPI client configuration from the
// environment.
func LoadNewsAPIConfig() Config {
	return Config{
		APIKey:  config.GetEnvString("NEWSAPI_API_KEY", ""),
		BaseURL: config.GetEnvString("NEWSAPI_BASE_URL", "https://newsapi.org"),
		Limit:   config.GetEnvInt("ARTICLE_SOURCE_LIMIT", defaultFetchLimit),
	}
}

// LoadGuardianConfig loads The Guardian client configuration from the
// environment.
func LoadGuardianConfig() Config {
	return Config{
		APIKey:  config.GetEnvString("GUARDIAN_API_KEY", ""),
		BaseURL: config.GetEnvString("GUARDIAN_BASE_URL", "https://content.guardianapis.com"),
		Limit:   config.GetEnvInt("ARTICLE_SOURCE_LIMIT", defaultFetchLimit),
	}
}

// LoadNYTimesConfig loads The New York Times client configuration from the
// environment.
func LoadNYTimesConfig() Config {
	return Config{
		APIKey:  config.GetEnvString("NYTIMES_API_KEY", ""),
		BaseURL: config.GetEnvString("NYTIMES_BASE_URL", "https://api.nytimes.com"),
		Limit:   config.GetEnvInt("ARTICLE_SOURCE_LIMIT", defaultFetchLimit),
	}
}
