package repository

import (
	"context"
	"time"

	"newswire/internal/domain/entity"
)

// QueryFilters contains the optional filters for article listing.
// Zero values mean "no filter".
type QueryFilters struct {
	Author string     // exact author match
	Source string     // exact outlet match, used by personalized feeds
	Date   *time.Time // exact-day match on creation date
	Search string     // case-insensitive substring across title, slug and content
}

// Empty reports whether no filter is set.
func (f QueryFilters) Empty() bool {
	return f.Author == "" && f.Source == "" && f.Date == nil && f.Search == ""
}

// ArticleRepository is the single write and read surface for articles.
// Upsert is the only mutation path: keyed on URL, it creates the article on
// first sight and overwrites every normalized field on subsequent calls while
// preserving ID and CreatedAt. Each upsert is an individual record-level
// write; there is no batch transaction.
type ArticleRepository interface {
	// Upsert stores the normalized record and returns the persisted article,
	// including its surrogate ID and original creation time.
	Upsert(ctx context.Context, article entity.NormalizedArticle) (*entity.Article, error)
	// Get retrieves an article by ID. Returns (nil, nil) if not found.
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// Query returns one page of articles matching the filters, ordered by
	// published_at descending (nulls last) with ties broken by id descending.
	// offset and limit follow SQL semantics; callers derive them from
	// page-based parameters.
	Query(ctx context.Context, filters QueryFilters, offset, limit int) ([]*entity.Article, error)
	// Count returns the total number of articles matching the filters,
	// used for pagination metadata.
	Count(ctx context.Context, filters QueryFilters) (int64, error)
}
