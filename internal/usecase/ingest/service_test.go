package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswire/internal/domain/entity"
	"newswire/internal/repository"
	"newswire/internal/resilience/retry"
	"newswire/internal/usecase/ingest"
)

/* ────────────────────────────── stubs ────────────────────────────── */

type stubProvider struct {
	name     string
	source   entity.ImportSource
	articles []entity.NormalizedArticle
	err      error
}

func (p *stubProvider) Name() string                { return p.name }
func (p *stubProvider) Source() entity.ImportSource { return p.source }

func (p *stubProvider) Fetch(_ context.Context) ([]entity.NormalizedArticle, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.articles, nil
}

type stubRepo struct {
	mu       sync.Mutex
	byURL    map[string]*entity.Article
	order    []string
	failURLs map[string]bool
	nextID   int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byURL:    make(map[string]*entity.Article),
		failURLs: make(map[string]bool),
	}
}

func (r *stubRepo) Upsert(_ context.Context, a entity.NormalizedArticle) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failURLs[a.URL] {
		return nil, errors.New("stub: write rejected")
	}
	if existing, ok := r.byURL[a.URL]; ok {
		existing.Title = a.Title
		existing.Slug = a.Slug
		existing.Content = a.Content
		existing.Author = a.Author
		existing.Source = a.Source
		existing.ImportSource = a.ImportSource
		existing.PublishedAt = a.PublishedAt
		return existing, nil
	}
	r.nextID++
	stored := &entity.Article{
		ID:           r.nextID,
		Title:        a.Title,
		Slug:         a.Slug,
		Content:      a.Content,
		Author:       a.Author,
		Source:       a.Source,
		ImportSource: a.ImportSource,
		URL:          a.URL,
		PublishedAt:  a.PublishedAt,
	}
	r.byURL[a.URL] = stored
	r.order = append(r.order, a.URL)
	return stored, nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byURL {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) Query(_ context.Context, _ repository.QueryFilters, _, _ int) ([]*entity.Article, error) {
	return nil, nil
}

func (r *stubRepo) Count(_ context.Context, _ repository.QueryFilters) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byURL)), nil
}

func makeArticles(prefix string, n int) []entity.NormalizedArticle {
	out := make([]entity.NormalizedArticle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entity.NormalizedArticle{
			Title:   fmt.Sprintf("%s headline %d", prefix, i),
			Content: "body",
			URL:     fmt.Sprintf("https://example.com/%s/%d", prefix, i),
		})
	}
	return out
}

/* ────────────────────────────── RunAll ────────────────────────────── */

func TestRunAll_AllProvidersSucceed(t *testing.T) {
	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "newsapi", source: entity.ImportSourceNewsAPI, articles: makeArticles("newsapi", 3)},
		&stubProvider{name: "guardian", source: entity.ImportSourceGuardian, articles: makeArticles("guardian", 2)},
	}, repo, nil)

	stats := svc.RunAll(context.Background())

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 5, stats.Stored())
	assert.Empty(t, stats.Failed())
	for _, a := range repo.byURL {
		assert.NotEmpty(t, a.ImportSource)
	}
}

func TestRunAll_ProviderOutageIsIsolated(t *testing.T) {
	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "newsapi", source: entity.ImportSourceNewsAPI, err: fmt.Errorf("%w: status 503", ingest.ErrFetchFailed)},
		&stubProvider{name: "guardian", source: entity.ImportSourceGuardian, articles: makeArticles("guardian", 4)},
		&stubProvider{name: "nytimes", source: entity.ImportSourceNYTimes, articles: makeArticles("nytimes", 2)},
	}, repo, nil)

	stats := svc.RunAll(context.Background())

	// The dead provider shows up in the stats but costs nobody else anything.
	assert.Equal(t, 6, stats.Stored())
	failed := stats.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "newsapi", failed[0].Provider)
	assert.ErrorIs(t, failed[0].Err, ingest.ErrFetchFailed)
}

func TestRunAll_MalformedRecordIsIsolated(t *testing.T) {
	articles := makeArticles("newsapi", 5)
	articles[2].URL = "" // missing URL must not abort the batch

	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "newsapi", source: entity.ImportSourceNewsAPI, articles: articles},
	}, repo, nil)

	stats := svc.RunAll(context.Background())

	require.Len(t, stats.Results, 1)
	result := stats.Results[0]
	assert.NoError(t, result.Err)
	assert.Equal(t, 5, result.Fetched)
	assert.Equal(t, 4, result.Stored)
	assert.Equal(t, 1, result.Skipped)
}

func TestRunAll_PersistenceErrorIsIsolated(t *testing.T) {
	articles := makeArticles("guardian", 3)

	repo := newStubRepo()
	repo.failURLs[articles[1].URL] = true

	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "guardian", source: entity.ImportSourceGuardian, articles: articles},
	}, repo, nil)

	stats := svc.RunAll(context.Background())

	result := stats.Results[0]
	assert.NoError(t, result.Err)
	assert.Equal(t, 2, result.Stored)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 2, len(repo.byURL))
}

func TestRunAll_DuplicateURLLastWriterWins(t *testing.T) {
	articles := []entity.NormalizedArticle{
		{Title: "First headline", Content: "v1", URL: "https://example.com/story"},
		{Title: "Second headline", Content: "v2", URL: "https://example.com/story"},
	}

	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "newsapi", source: entity.ImportSourceNewsAPI, articles: articles},
	}, repo, nil)

	svc.RunAll(context.Background())

	require.Len(t, repo.byURL, 1)
	stored := repo.byURL["https://example.com/story"]
	assert.Equal(t, int64(1), stored.ID)
	assert.Equal(t, "Second headline", stored.Title)
	assert.Equal(t, "v2", stored.Content)
}

func TestRunAll_IsIdempotent(t *testing.T) {
	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "nytimes", source: entity.ImportSourceNYTimes, articles: makeArticles("nytimes", 3)},
	}, repo, nil)

	first := svc.RunAll(context.Background())
	second := svc.RunAll(context.Background())

	assert.Equal(t, 3, first.Stored())
	assert.Equal(t, 3, second.Stored())
	assert.Len(t, repo.byURL, 3)
}

func TestRunAll_AppliesDefaultsBeforeStoring(t *testing.T) {
	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{
			name:   "newsapi",
			source: entity.ImportSourceNewsAPI,
			articles: []entity.NormalizedArticle{
				{Title: "No Byline Story", URL: "https://example.com/anon"},
			},
		},
	}, repo, nil)

	svc.RunAll(context.Background())

	stored := repo.byURL["https://example.com/anon"]
	require.NotNil(t, stored)
	assert.Equal(t, entity.DefaultAuthor, stored.Author)
	assert.Equal(t, "no-byline-story", stored.Slug)
	assert.Equal(t, entity.ImportSourceNewsAPI, stored.ImportSource)
}

/* ──────────────────────────── RunProvider ─────────────────────────── */

func TestRunProvider_ByName(t *testing.T) {
	repo := newStubRepo()
	svc := ingest.NewService([]ingest.Provider{
		&stubProvider{name: "newsapi", source: entity.ImportSourceNewsAPI, articles: makeArticles("newsapi", 2)},
		&stubProvider{name: "guardian", source: entity.ImportSourceGuardian, articles: makeArticles("guardian", 2)},
	}, repo, nil)

	result, err := svc.RunProvider(context.Background(), "guardian")

	require.NoError(t, err)
	assert.Equal(t, "guardian", result.Provider)
	assert.Equal(t, 2, result.Stored)
	assert.Len(t, repo.byURL, 2)
}

func TestRunProvider_Unknown(t *testing.T) {
	svc := ingest.NewService(nil, newStubRepo(), nil)

	_, err := svc.RunProvider(context.Background(), "reuters")

	assert.ErrorIs(t, err, ingest.ErrUnknownProvider)
}

/* ───────────────────────────── Classify ───────────────────────────── */

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ingest.ErrorKind
	}{
		{"nil", nil, ingest.KindNone},
		{"missing key", ingest.ErrMissingAPIKey, ingest.KindConfiguration},
		{"wrapped missing key", fmt.Errorf("newsapi: %w", ingest.ErrMissingAPIKey), ingest.KindConfiguration},
		{"fetch failed", fmt.Errorf("%w: status 502", ingest.ErrFetchFailed), ingest.KindTransport},
		{"http error", &retry.HTTPError{StatusCode: 503}, ingest.KindTransport},
		{"validation", entity.ErrValidationFailed, ingest.KindMalformed},
		{"other", errors.New("disk full"), ingest.KindPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ingest.Classify(tt.err))
		})
	}
}
