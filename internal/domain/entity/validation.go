package entity

import (
	"fmt"
	"net/url"
)

// maxURLLength bounds stored URLs; anything longer is provider garbage.
const maxURLLength = 2048

// ValidateURL validates the format of an article URL.
// It checks that the URL is well-formed, uses an HTTP or HTTPS scheme, and has
// a host. Article URLs are stored and served as links, never dereferenced by
// this system, so no reachability or address checks are performed.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}

	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is not well-formed"}
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}

	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}

	return nil
}
