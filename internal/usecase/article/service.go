// Package article provides read access to stored articles: lookup by id and
// filtered, paginated listing. The ingestion pipeline is the only writer;
// this package is the query side used by downstream consumers.
package article

import (
	"context"
	"fmt"

	"newswire/internal/common/pagination"
	"newswire/internal/domain/entity"
	"newswire/internal/repository"
)

// Service exposes article queries over the repository.
type Service struct {
	repo    repository.ArticleRepository
	pageCfg pagination.Config
}

// NewService creates an article query service.
func NewService(repo repository.ArticleRepository, pageCfg pagination.Config) *Service {
	return &Service{repo: repo, pageCfg: pageCfg}
}

// Get returns one article by id, or entity.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Article, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if a == nil {
		return nil, fmt.Errorf("article %d: %w", id, entity.ErrNotFound)
	}
	return a, nil
}

// List returns one page of articles matching the filters, newest first,
// together with page metadata. Out-of-range page params are normalized to
// the configured defaults.
func (s *Service) List(ctx context.Context, filters repository.QueryFilters, params pagination.Params) ([]*entity.Article, pagination.Metadata, error) {
	params = params.WithDefaults(s.pageCfg)

	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, pagination.Metadata{}, fmt.Errorf("count articles: %w", err)
	}

	articles, err := s.repo.Query(ctx, filters, params.Offset(), params.PageSize)
	if err != nil {
		return nil, pagination.Metadata{}, fmt.Errorf("query articles: %w", err)
	}

	return articles, pagination.NewMetadata(params, total), nil
}
