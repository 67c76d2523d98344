package entity

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizedArticle_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name       string
		article    NormalizedArticle
		wantSlug   string
		wantAuthor string
		wantImport ImportSource
	}{
		{
			name: "missing author substituted with Unknown",
			article: NormalizedArticle{
				Title:        "Election Results 2024",
				ImportSource: ImportSourceNewsAPI,
			},
			wantSlug:   "election-results-2024",
			wantAuthor: "Unknown",
			wantImport: ImportSourceNewsAPI,
		},
		{
			name: "provider-supplied slug and author are kept",
			article: NormalizedArticle{
				Title:        "Weather Update",
				Slug:         "weather-update-uk",
				Author:       "Jane Doe",
				ImportSource: ImportSourceGuardian,
			},
			wantSlug:   "weather-update-uk",
			wantAuthor: "Jane Doe",
			wantImport: ImportSourceGuardian,
		},
		{
			name: "empty import source falls back to Default",
			article: NormalizedArticle{
				Title: "Manually Created",
			},
			wantSlug:   "manually-created",
			wantAuthor: "Unknown",
			wantImport: ImportSourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.article.ApplyDefaults()
			if tt.article.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", tt.article.Slug, tt.wantSlug)
			}
			if tt.article.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", tt.article.Author, tt.wantAuthor)
			}
			if tt.article.ImportSource != tt.wantImport {
				t.Errorf("ImportSource = %q, want %q", tt.article.ImportSource, tt.wantImport)
			}
		})
	}
}

func TestNormalizedArticle_Validate(t *testing.T) {
	now := time.Now()

	valid := NormalizedArticle{
		Title:        "Go 1.25 released",
		Slug:         "go-1-25-released",
		Author:       "The Go Team",
		Source:       "golang.org",
		ImportSource: ImportSourceNewsAPI,
		URL:          "https://example.com/go-1-25",
		PublishedAt:  &now,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid article = %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*NormalizedArticle)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(a *NormalizedArticle) { a.Title = "" },
			wantField: "title",
		},
		{
			name:      "missing url",
			mutate:    func(a *NormalizedArticle) { a.URL = "" },
			wantField: "url",
		},
		{
			name:      "arbitrary import source rejected",
			mutate:    func(a *NormalizedArticle) { a.ImportSource = "Reuters" },
			wantField: "import_source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid
			tt.mutate(&a)

			err := a.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("Validate() error does not match ErrValidationFailed: %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error is not a ValidationError: %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.wantField)
			}
		})
	}
}

func TestImportSource_Valid(t *testing.T) {
	for _, s := range []ImportSource{
		ImportSourceNewsAPI, ImportSourceGuardian, ImportSourceNYTimes, ImportSourceDefault,
	} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []ImportSource{"", "newsapi", "BBC", "The Guardian"} {
		if s.Valid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}
