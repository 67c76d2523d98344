package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newswire/internal/domain/entity"
	"newswire/internal/resilience/circuitbreaker"
	"newswire/internal/usecase/ingest"
)

// Guardian implements ingest.Provider for The Guardian content API.
type Guardian struct {
	cfg            Config
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
}

// NewGuardian creates a Guardian client with the given configuration.
func NewGuardian(cfg Config, client *http.Client) *Guardian {
	return &Guardian{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ProviderFetchConfig("guardian")),
		limiter:        rate.NewLimiter(rate.Limit(1), 2),
	}
}

// Name returns the provider identifier used for logging and scheduling.
func (p *Guardian) Name() string { return "guardian" }

// Source returns the import source recorded on this provider's articles.
func (p *Guardian) Source() entity.ImportSource { return entity.ImportSourceGuardian }

// Fetch retrieves the newest articles from The Guardian search endpoint.
// A missing API key returns a configuration error without a network call.
func (p *Guardian) Fetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("guardian: %w", ingest.ErrMissingAPIKey)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("guardian rate limiter: %w", err)
	}

	cbResult, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		return p.doFetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("guardian circuit breaker open, request rejected",
				slog.String("state", p.circuitBreaker.State().String()))
		}
		return nil, fmt.Errorf("%w: %w", ingest.ErrFetchFailed, err)
	}

	return cbResult.([]entity.NormalizedArticle), nil
}

type guardianResponse struct {
	Response struct {
		Status  string           `json:"status"`
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Slug   string `json:"slug"`
		Body   string `json:"body"`
		Byline string `json:"byline"`
	} `json:"fields"`
}

// doFetch performs the actual API call without the circuit breaker.
func (p *Guardian) doFetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	endpoint, err := url.Parse(p.cfg.BaseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("api-key", p.cfg.APIKey)
	q.Set("show-fields", "all")
	q.Set("show-tags", "all")
	q.Set("page-size", strconv.Itoa(p.cfg.Limit))
	q.Set("order-by", "newest")
	endpoint.RawQuery = q.Encode()

	body, err := getJSON(ctx, p.client, endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload guardianResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode guardian response: %w", err)
	}

	articles := make([]entity.NormalizedArticle, 0, len(payload.Response.Results))
	for _, item := range payload.Response.Results {
		if item.WebTitle == "" || item.WebURL == "" {
			slog.Debug("skipping guardian item without title or url",
				slog.String("url", item.WebURL))
			continue
		}

		articles = append(articles, entity.NormalizedArticle{
			Title:       item.WebTitle,
			Slug:        item.Fields.Slug,
			Content:     item.Fields.Body,
			Author:      item.Fields.Byline,
			Source:      "The Guardian",
			URL:         item.WebURL,
			PublishedAt: parseTimestamp(item.WebPublicationDate, time.RFC3339, "guardian"),
		})
	}

	return articles, nil
}
