// Package upstream classifies failures of HTTP model and storage backends
// so the indexer knows which ones to retry.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

// maxBodyInError bounds how much of a response body ends up in an error message.
const maxBodyInError = 512

// StatusError turns a non-2xx response into an error wrapping sentinel.
// 429 also wraps domain.ErrRateLimited; 408 and 5xx are marked retryable.
func StatusError(provider string, sentinel error, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxBodyInError {
		msg = msg[:maxBodyInError] + "..."
	}
	err := fmt.Errorf("%s: %w (status %d): %s", provider, sentinel, status, msg)

	switch {
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
	case status == http.StatusRequestTimeout, status >= 500:
		return domain.Retryable(err)
	default:
		return err
	}
}

// TransportError wraps a failed round trip. Network failures are retryable;
// cancellation by the caller is not.
func TransportError(provider string, sentinel error, err error) error {
	wrapped := fmt.Errorf("%s: %w: %w", provider, sentinel, err)
	if errors.Is(err, context.Canceled) {
		return wrapped
	}
	return domain.Retryable(wrapped)
}

// OK reports whether status is 2xx.
func OK(status int) bool {
	return status >= 200 && status < 300
}
