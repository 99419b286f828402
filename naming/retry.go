package naming

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryPolicy controls how model calls are retried.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy retries three times with exponential backoff from one
// second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Second}
}

// APIError is a model call the provider answered with an error status.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error (status %d)", e.Provider, e.StatusCode)
}

// Temporary reports whether repeating the call can succeed. Client errors
// other than rate limiting fail the same way every time.
func (e *APIError) Temporary() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode < 400 || e.StatusCode >= 500
}

func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Temporary()
	}
	return true
}

// do runs fn until it succeeds, the attempts are used up, a permanent
// error is returned or ctx is done.
func (p RetryPolicy) do(ctx context.Context, fn func() (string, error)) (string, error) {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}
	return retry.DoWithData(
		fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.RetryIf(retryable),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
