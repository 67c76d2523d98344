package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newswire/internal/domain/entity"
	"newswire/internal/resilience/circuitbreaker"
	"newswire/internal/usecase/ingest"
)

// NYTimes implements ingest.Provider for the New York Times top stories API.
type NYTimes struct {
	cfg            Config
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
}

// NewNYTimes creates a NYTimes client with the given configuration.
func NewNYTimes(cfg Config, client *http.Client) *NYTimes {
	return &NYTimes{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ProviderFetchConfig("nytimes")),
		limiter:        rate.NewLimiter(rate.Limit(1), 2),
	}
}

// Name returns the provider identifier used for logging and scheduling.
func (p *NYTimes) Name() string { return "nytimes" }

// Source returns the import source recorded on this provider's articles.
func (p *NYTimes) Source() entity.ImportSource { return entity.ImportSourceNYTimes }

// Fetch retrieves the current home-section top stories.
// A missing API key returns a configuration error without a network call.
func (p *NYTimes) Fetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("nytimes: %w", ingest.ErrMissingAPIKey)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("nytimes rate limiter: %w", err)
	}

	cbResult, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		return p.doFetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("nytimes circuit breaker open, request rejected",
				slog.String("state", p.circuitBreaker.State().String()))
		}
		return nil, fmt.Errorf("%w: %w", ingest.ErrFetchFailed, err)
	}

	return cbResult.([]entity.NormalizedArticle), nil
}

type nytimesResponse struct {
	Status  string          `json:"status"`
	Results []nytimesResult `json:"results"`
}

type nytimesResult struct {
	Title         string `json:"title"`
	Abstract      string `json:"abstract"`
	Byline        string `json:"byline"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date"`
}

// doFetch performs the actual API call without the circuit breaker.
// The top stories endpoint has no page-size parameter, so the batch is
// truncated client-side.
func (p *NYTimes) doFetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	endpoint, err := url.Parse(p.cfg.BaseURL + "/svc/topstories/v2/home.json")
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("api-key", p.cfg.APIKey)
	q.Set("section", "home")
	endpoint.RawQuery = q.Encode()

	body, err := getJSON(ctx, p.client, endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload nytimesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode nytimes response: %w", err)
	}

	results := payload.Results
	if p.cfg.Limit > 0 && len(results) > p.cfg.Limit {
		results = results[:p.cfg.Limit]
	}

	articles := make([]entity.NormalizedArticle, 0, len(results))
	for _, item := range results {
		if item.Title == "" || item.URL == "" {
			slog.Debug("skipping nytimes item without title or url",
				slog.String("url", item.URL))
			continue
		}

		articles = append(articles, entity.NormalizedArticle{
			Title:       item.Title,
			Content:     item.Abstract,
			Author:      item.Byline,
			Source:      "NYTimes",
			URL:         item.URL,
			PublishedAt: parseTimestamp(item.PublishedDate, time.RFC3339, "nytimes"),
		})
	}

	return articles, nil
}
