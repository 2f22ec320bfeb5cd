package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Defaults for [Head].
const (
	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond
)

var (
	// ErrNotFound is returned for 404 and 410 responses.
	ErrNotFound = errors.New("remote media not found")

	// ErrStatus is returned for any other failing status.
	ErrStatus = errors.New("unexpected status")
)

// Head checks that url answers a HEAD request with a success status.
// A nil client means http.DefaultClient.
func Head(ctx context.Context, client *http.Client, url string) error {
	return HeadWith(ctx, client, url, DefaultAttempts, DefaultDelay)
}

// HeadWith is [Head] with explicit retry settings.
func HeadWith(ctx context.Context, client *http.Client, url string, attempts int, delay time.Duration) error {
	if client == nil {
		client = http.DefaultClient
	}
	return Retry(ctx, attempts, delay, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &RetryableError{Err: fmt.Errorf("HEAD %s: %w", url, err)}
		}
		resp.Body.Close()
		return statusError(url, resp.StatusCode)
	})
}

func statusError(url string, code int) error {
	switch {
	case code < http.StatusBadRequest:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return fmt.Errorf("HEAD %s: %w", url, ErrNotFound)
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return &RetryableError{Err: fmt.Errorf("HEAD %s: %d: %w", url, code, ErrStatus)}
	default:
		return fmt.Errorf("HEAD %s: %d: %w", url, code, ErrStatus)
	}
}
