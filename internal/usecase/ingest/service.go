package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"newswire/internal/domain/entity"
	"newswire/internal/observability/logging"
	"newswire/internal/observability/metrics"
	"newswire/internal/repository"
)

// Provider fetches a batch of candidate articles from one upstream news API.
// Implementations live under internal/infra/provider.
type Provider interface {
	// Name returns the stable identifier used for logging, metrics and
	// cron job registration (e.g. "newsapi").
	Name() string

	// Source returns the import source recorded on articles from this
	// provider.
	Source() entity.ImportSource

	// Fetch retrieves the latest batch from the upstream API. A returned
	// error aborts this provider's run only; partial batches are allowed.
	Fetch(ctx context.Context) ([]entity.NormalizedArticle, error)
}

// ProviderResult holds the outcome of a single provider's run.
type ProviderResult struct {
	Provider string
	Fetched  int
	Stored   int
	Skipped  int
	Err      error
}

// RunStats aggregates a full orchestrated run across all providers.
type RunStats struct {
	RunID    string
	Results  []ProviderResult
	Duration time.Duration
}

// Stored returns the total number of articles stored across all providers.
func (s *RunStats) Stored() int {
	total := 0
	for _, r := range s.Results {
		total += r.Stored
	}
	return total
}

// Failed returns the results of providers whose run ended in an error.
func (s *RunStats) Failed() []ProviderResult {
	var failed []ProviderResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Service orchestrates fetching from all registered providers and persisting
// the results. It holds no per-run state and is safe for concurrent use.
type Service struct {
	providers   []Provider
	articleRepo repository.ArticleRepository
	logger      *slog.Logger
}

// NewService creates an ingestion service over the given providers.
func NewService(providers []Provider, articleRepo repository.ArticleRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		providers:   providers,
		articleRepo: articleRepo,
		logger:      logger,
	}
}

// RunAll fetches from every provider concurrently. Provider failures are
// recorded in the returned stats, never propagated: one provider being down
// must not cost the others their run.
func (s *Service) RunAll(ctx context.Context) *RunStats {
	start := time.Now()
	stats := &RunStats{
		RunID:   uuid.NewString(),
		Results: make([]ProviderResult, len(s.providers)),
	}
	logger := s.logger.With(slog.String("run_id", stats.RunID))

	logger.Info("ingestion run started", slog.Int("providers", len(s.providers)))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range s.providers {
		i, p := i, p
		g.Go(func() error {
			stats.Results[i] = s.runOne(gctx, p, logger)
			// Errors stay inside the result so sibling providers keep
			// running.
			return nil
		})
	}
	_ = g.Wait()

	stats.Duration = time.Since(start)
	logger.Info("ingestion run finished",
		slog.Int("stored", stats.Stored()),
		slog.Int("failed_providers", len(stats.Failed())),
		slog.Duration("duration", stats.Duration),
	)
	return stats
}

// RunProvider fetches from a single provider by name. It returns
// ErrUnknownProvider for an unregistered name; the provider's own failure is
// reported inside the result, mirroring RunAll.
func (s *Service) RunProvider(ctx context.Context, name string) (ProviderResult, error) {
	for _, p := range s.providers {
		if p.Name() == name {
			logger := s.logger.With(slog.String("run_id", uuid.NewString()))
			return s.runOne(ctx, p, logger), nil
		}
	}
	return ProviderResult{}, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}

func (s *Service) runOne(ctx context.Context, p Provider, logger *slog.Logger) ProviderResult {
	start := time.Now()
	logger = logging.WithProvider(logger, p.Name())
	result := ProviderResult{Provider: p.Name()}

	batch, err := p.Fetch(ctx)
	if err != nil {
		kind := Classify(err)
		logger.Error("provider fetch failed",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		metrics.RecordProviderRun(p.Name(), string(kind), time.Since(start))
		result.Err = err
		return result
	}

	result.Fetched = len(batch)
	metrics.RecordArticlesFetched(p.Name(), len(batch))

	// Records are upserted sequentially in API order so that duplicate URLs
	// within a batch resolve last-writer-wins deterministically.
	for _, raw := range batch {
		raw.ImportSource = p.Source()
		raw.ApplyDefaults()

		if err := raw.Validate(); err != nil {
			result.Skipped++
			metrics.RecordArticleSkipped(p.Name(), "malformed")
			logger.Warn("skipping malformed article",
				slog.String("url", raw.URL),
				slog.String("error", err.Error()),
			)
			continue
		}

		if _, err := s.articleRepo.Upsert(ctx, raw); err != nil {
			result.Skipped++
			metrics.RecordArticleSkipped(p.Name(), "persistence_error")
			logger.Error("failed to store article",
				slog.String("url", raw.URL),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Stored++
	}

	metrics.RecordArticlesStored(p.Name(), result.Stored)
	metrics.RecordProviderRun(p.Name(), "success", time.Since(start))
	logger.Info("provider run completed",
		slog.Int("fetched", result.Fetched),
		slog.Int("stored", result.Stored),
		slog.Int("skipped", result.Skipped),
	)
	return result
}
