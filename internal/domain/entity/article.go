// Package entity defines the core domain entities and validation logic for the
// application. It contains the canonical article representations shared by the
// provider adapters and the persistence layer, along with their validation
// rules and domain-specific errors.
package entity

import "time"

// DefaultAuthor is substituted when a provider omits the author field.
const DefaultAuthor = "Unknown"

// Article represents a persisted news article.
// ID and CreatedAt are assigned by the store on first insert and never change;
// every other field is overwritten on each upsert of the same URL.
type Article struct {
	ID           int64
	Title        string
	Slug         string
	Content      string
	Author       string
	Source       string
	ImportSource ImportSource
	URL          string
	PublishedAt  *time.Time
	CreatedAt    time.Time
}

// NormalizedArticle is the provider-independent record every adapter produces.
// It is the only input the store accepts; URL is the natural key used for
// deduplication across providers.
type NormalizedArticle struct {
	Title        string
	Slug         string
	Content      string
	Author       string
	Source       string
	ImportSource ImportSource
	URL          string
	PublishedAt  *time.Time
}

// ApplyDefaults fills the optional fields a provider may omit:
// slug derived from the title, author "Unknown", import source "Default".
func (n *NormalizedArticle) ApplyDefaults() {
	if n.Slug == "" {
		n.Slug = Slugify(n.Title)
	}
	if n.Author == "" {
		n.Author = DefaultAuthor
	}
	if n.ImportSource == "" {
		n.ImportSource = ImportSourceDefault
	}
}

// Validate checks the required-field invariants of a normalized record.
// A record failing validation is skipped by the orchestrator; it never aborts
// the rest of its batch.
func (n *NormalizedArticle) Validate() error {
	if n.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if err := ValidateURL(n.URL); err != nil {
		return err
	}
	if !n.ImportSource.Valid() {
		return &ValidationError{
			Field:   "import_source",
			Message: "import source must be one of " + importSourceList,
		}
	}
	return nil
}
