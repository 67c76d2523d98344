// Package pagination provides page-based pagination math shared by article
// query consumers.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pagination limits.
type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultConfig returns the standard pagination configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// LoadFromEnv reads pagination limits from PAGINATION_DEFAULT_PAGE_SIZE and
// PAGINATION_MAX_PAGE_SIZE, keeping defaults for unset or invalid values.
func LoadFromEnv() Config {
	cfg := DefaultConfig()
	cfg.DefaultPageSize = envInt("PAGINATION_DEFAULT_PAGE_SIZE", cfg.DefaultPageSize)
	cfg.MaxPageSize = envInt("PAGINATION_MAX_PAGE_SIZE", cfg.MaxPageSize)
	return cfg
}

// Params identifies one page of results.
type Params struct {
	Page     int
	PageSize int
}

// WithDefaults replaces out-of-range values with configured defaults.
func (p Params) WithDefaults(cfg Config) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = cfg.DefaultPageSize
	}
	if p.PageSize > cfg.MaxPageSize {
		p.PageSize = cfg.MaxPageSize
	}
	return p
}

// Validate checks the params against the configured limits.
func (p Params) Validate(cfg Config) error {
	if p.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", p.Page)
	}
	if p.PageSize < 1 || p.PageSize > cfg.MaxPageSize {
		return fmt.Errorf("page size must be in [1, %d], got %d", cfg.MaxPageSize, p.PageSize)
	}
	return nil
}

// Offset converts the page number into a SQL OFFSET.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns the page count for a total row count.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		pages++
	}
	return pages
}

// Metadata describes one returned page.
type Metadata struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewMetadata builds page metadata from params and a total count.
func NewMetadata(p Params, total int64) Metadata {
	return Metadata{
		Page:       p.Page,
		PageSize:   p.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, p.PageSize),
	}
}

func envInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return defaultValue
	}
	return value
}
