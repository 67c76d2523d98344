// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"newswire/internal/pkg/search"
	"newswire/internal/repository"
)

// ArticleQueryBuilder builds WHERE clauses for filtered article listing.
// The builder is shared between the COUNT and SELECT queries so both always
// agree on the matching rows. It uses PostgreSQL-specific features: ILIKE for
// case-insensitive matching and numbered placeholders ($1, $2, ...).
type ArticleQueryBuilder struct{}

// NewArticleQueryBuilder creates a new query builder instance.
func NewArticleQueryBuilder() *ArticleQueryBuilder {
	return &ArticleQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and arguments for the given filters.
// Filters combine with AND; the search term is a single OR group across title,
// slug and content. Returns an empty clause when no filter is set.
func (qb *ArticleQueryBuilder) BuildWhereClause(filters repository.QueryFilters) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if filters.Author != "" {
		conditions = append(conditions, fmt.Sprintf("author = $%d", paramIndex))
		args = append(args, filters.Author)
		paramIndex++
	}

	if filters.Source != "" {
		conditions = append(conditions, fmt.Sprintf("source = $%d", paramIndex))
		args = append(args, filters.Source)
		paramIndex++
	}

	// Exact-day match on the creation date, compared in the DB's date type so
	// the time-of-day component of created_at is ignored.
	if filters.Date != nil {
		conditions = append(conditions, fmt.Sprintf("created_at::date = $%d::date", paramIndex))
		args = append(args, filters.Date.Format("2006-01-02"))
		paramIndex++
	}

	if filters.Search != "" {
		escaped := search.EscapeILIKE(filters.Search)
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR slug ILIKE $%d OR content ILIKE $%d)",
			paramIndex, paramIndex+1, paramIndex+2))
		args = append(args, escaped, escaped, escaped)
		paramIndex += 3
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}
