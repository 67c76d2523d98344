package db

import (
	"database/sql"
)

// MigrateUp creates the articles schema. All statements are idempotent so
// the worker can run migrations on every start.
func MigrateUp(pool *sql.DB) error {
	if _, err := pool.Exec(`
CREATE TABLE IF NOT EXISTS articles (
    id            BIGSERIAL PRIMARY KEY,
    title         TEXT NOT NULL,
    slug          TEXT NOT NULL,
    content       TEXT NOT NULL DEFAULT '',
    author        TEXT NOT NULL DEFAULT 'Unknown',
    source        TEXT NOT NULL DEFAULT '',
    import_source VARCHAR(20) NOT NULL DEFAULT 'Default',
    url           TEXT NOT NULL UNIQUE,
    published_at  TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY published_at DESC NULLS LAST, id DESC
		`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC NULLS LAST, id DESC)`,
		// exact-match filters
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_import_source ON articles(import_source)`,
		// created_at::date filter
		`CREATE INDEX IF NOT EXISTS idx_articles_created_date ON articles((created_at::date))`,
	}
	for _, idx := range indexes {
		if _, err := pool.Exec(idx); err != nil {
			return err
		}
	}

	// pg_trgm speeds up the ILIKE search filters. Errors are ignored: the
	// extension may already exist or the role may lack superuser rights, and
	// the queries stay correct without the indexes.
	_, _ = pool.Exec(`CREATE EXTENSION IF NOT EXISTS pg_trgm`)

	searchIndexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_articles_title_gin ON articles USING gin(title gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_slug_gin ON articles USING gin(slug gin_trgm_ops)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_content_gin ON articles USING gin(content gin_trgm_ops)`,
	}
	for _, idx := range searchIndexes {
		// fails without pg_trgm, which is fine
		_, _ = pool.Exec(idx)
	}

	_, _ = pool.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_import_source'
    ) THEN
        ALTER TABLE articles ADD CONSTRAINT chk_import_source
        CHECK (import_source IN ('NewsAPI', 'TheGuardian', 'NYTimes', 'Default'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown drops the articles schema. This deletes all data; it exists
// for disposable environments only.
func MigrateDown(pool *sql.DB) error {
	statements := []string{
		`DROP INDEX IF EXISTS idx_articles_content_gin`,
		`DROP INDEX IF EXISTS idx_articles_slug_gin`,
		`DROP INDEX IF EXISTS idx_articles_title_gin`,
		`DROP INDEX IF EXISTS idx_articles_created_date`,
		`DROP INDEX IF EXISTS idx_articles_import_source`,
		`DROP INDEX IF EXISTS idx_articles_source`,
		`DROP INDEX IF EXISTS idx_articles_author`,
		`DROP INDEX IF EXISTS idx_articles_published_at`,
		`DROP TABLE IF EXISTS articles`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
