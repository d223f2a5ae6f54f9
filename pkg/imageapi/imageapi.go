// Package imageapi wraps the external text-to-image service behind a small
// interface so the generation pipeline can be tested against fakes.
package imageapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Client is a text-to-image generator returning a URL to the rendered image.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIError carries the upstream HTTP status and response body so callers can
// decide whether a failure is retryable. The body is for logs only and must
// never be surfaced to end users.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("image api returned status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports whether the error is a rate limit (429) or transient
// upstream failure (500). Anything else aborts immediately.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests ||
		apiErr.StatusCode == http.StatusInternalServerError
}
