package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"newswire/internal/domain/entity"
	"newswire/internal/pkg/search"
	"newswire/internal/repository"
)

const articleColumns = "id, title, slug, content, author, source, import_source, url, published_at, created_at"

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
	}
}

// Upsert inserts the record or, when an article with the same URL already
// exists, overwrites its normalized fields. The single INSERT ... ON CONFLICT
// statement makes each record's write atomic and safe under concurrent calls
// for the same URL (last writer wins); id and created_at are never touched on
// the update path.
func (repo *ArticleRepo) Upsert(ctx context.Context, article entity.NormalizedArticle) (*entity.Article, error) {
	const query = `
INSERT INTO articles
       (title, slug, content, author, source, import_source, url, published_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (url) DO UPDATE SET
       title         = EXCLUDED.title,
       slug          = EXCLUDED.slug,
       content       = EXCLUDED.content,
       author        = EXCLUDED.author,
       source        = EXCLUDED.source,
       import_source = EXCLUDED.import_source,
       published_at  = EXCLUDED.published_at
RETURNING id, created_at`

	stored := entity.Article{
		Title:        article.Title,
		Slug:         article.Slug,
		Content:      article.Content,
		Author:       article.Author,
		Source:       article.Source,
		ImportSource: article.ImportSource,
		URL:          article.URL,
		PublishedAt:  article.PublishedAt,
	}

	err := repo.db.QueryRowContext(ctx, query,
		article.Title, article.Slug, article.Content, article.Author,
		article.Source, string(article.ImportSource), article.URL,
		article.PublishedAt, time.Now(),
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("Upsert: %w", err)
	}
	return &stored, nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	query := `
SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	var article entity.Article
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&article.ID, &article.Title, &article.Slug, &article.Content,
			&article.Author, &article.Source, &article.ImportSource,
			&article.URL, &article.PublishedAt, &article.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &article, nil
}

// Query returns one page of articles matching the filters, most recently
// published first. Articles without a publication date sort last; ties break
// on id descending.
func (repo *ArticleRepo) Query(ctx context.Context, filters repository.QueryFilters, offset, limit int) ([]*entity.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, search.DefaultQueryTimeout)
	defer cancel()

	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	paramIndex := len(args) + 1
	args = append(args, limit, offset)

	query := fmt.Sprintf(`
SELECT `+articleColumns+`
FROM articles
%s
ORDER BY published_at DESC NULLS LAST, id DESC
LIMIT $%d OFFSET $%d`, whereClause, paramIndex, paramIndex+1)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("Query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, limit)
	for rows.Next() {
		var article entity.Article
		if err := rows.Scan(&article.ID, &article.Title, &article.Slug,
			&article.Content, &article.Author, &article.Source,
			&article.ImportSource, &article.URL,
			&article.PublishedAt, &article.CreatedAt); err != nil {
			return nil, fmt.Errorf("Query: Scan: %w", err)
		}
		articles = append(articles, &article)
	}
	return articles, rows.Err()
}

// Count returns the number of articles matching the filters.
func (repo *ArticleRepo) Count(ctx context.Context, filters repository.QueryFilters) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, search.DefaultQueryTimeout)
	defer cancel()

	whereClause, args := repo.queryBuilder.BuildWhereClause(filters)
	query := "SELECT COUNT(*) FROM articles " + whereClause

	var count int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
