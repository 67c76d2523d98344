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

// newsAPIWindowDays bounds how far back the everything endpoint searches.
const newsAPIWindowDays = 2

// NewsAPI implements ingest.Provider for newsapi.org's everything endpoint.
type NewsAPI struct {
	cfg            Config
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	now            func() time.Time
}

// NewNewsAPI creates a NewsAPI client with the given configuration.
func NewNewsAPI(cfg Config, client *http.Client) *NewsAPI {
	return &NewsAPI{
		cfg:            cfg,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ProviderFetchConfig("newsapi")),
		limiter:        rate.NewLimiter(rate.Limit(1), 2),
		now:            time.Now,
	}
}

// Name returns the provider identifier used for logging and scheduling.
func (p *NewsAPI) Name() string { return "newsapi" }

// Source returns the import source recorded on this provider's articles.
func (p *NewsAPI) Source() entity.ImportSource { return entity.ImportSourceNewsAPI }

// Fetch retrieves the latest batch of articles from NewsAPI.
// A missing API key returns a configuration error without a network call.
func (p *NewsAPI) Fetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	if p.cfg.APIKey == "" {
		return nil, fmt.Errorf("newsapi: %w", ingest.ErrMissingAPIKey)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("newsapi rate limiter: %w", err)
	}

	cbResult, err := p.circuitBreaker.Execute(func() (interface{}, error) {
		return p.doFetch(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("newsapi circuit breaker open, request rejected",
				slog.String("state", p.circuitBreaker.State().String()))
		}
		return nil, fmt.Errorf("%w: %w", ingest.ErrFetchFailed, err)
	}

	return cbResult.([]entity.NormalizedArticle), nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// doFetch performs the actual API call without the circuit breaker.
func (p *NewsAPI) doFetch(ctx context.Context) ([]entity.NormalizedArticle, error) {
	endpoint, err := url.Parse(p.cfg.BaseURL + "/v2/everything")
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("apiKey", p.cfg.APIKey)
	q.Set("q", "latest news")
	q.Set("language", "en")
	q.Set("from", p.now().AddDate(0, 0, -newsAPIWindowDays).Format(time.RFC3339))
	q.Set("sortBy", "priority")
	q.Set("pageSize", strconv.Itoa(p.cfg.Limit))
	endpoint.RawQuery = q.Encode()

	body, err := getJSON(ctx, p.client, endpoint.String())
	if err != nil {
		return nil, err
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}

	articles := make([]entity.NormalizedArticle, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		if item.Title == "" || item.URL == "" {
			slog.Debug("skipping newsapi item without title or url",
				slog.String("url", item.URL))
			continue
		}

		source := item.Source.Name
		if source == "" {
			source = "News API"
		}

		articles = append(articles, entity.NormalizedArticle{
			Title:       item.Title,
			Content:     item.Content,
			Author:      item.Author,
			Source:      source,
			URL:         item.URL,
			PublishedAt: parseTimestamp(item.PublishedAt, time.RFC3339, "newsapi"),
		})
	}

	return articles, nil
}
