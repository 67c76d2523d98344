package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"newswire/internal/resilience/retry"
)

const (
	maxBodySize = 10 * 1024 * 1024 // 10MB

	// errorBodyLimit bounds how much of a failed response ends up in logs.
	errorBodyLimit = 512

	userAgent = "newswire/1.0"
)

// getJSON performs a GET request and returns the response body.
// Non-2xx responses become a retry.HTTPError carrying the status code and a
// truncated body.
func getJSON(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Limit body size to prevent memory exhaustion
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), errorBodyLimit),
		}
	}

	return body, nil
}

// parseTimestamp parses a provider timestamp in the given layout.
// An unparseable value is logged and dropped rather than failing the record.
func parseTimestamp(value, layout, provider string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		slog.Debug("unparseable published timestamp, dropping",
			slog.String("provider", provider),
			slog.String("value", value))
		return nil
	}
	return &t
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
