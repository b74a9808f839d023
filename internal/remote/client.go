// Package remote is the HTTP client for the persistence service: a record
// store with CRUD over three collections (ideas, folders, settings) keyed by
// session id. The service is an external collaborator; this package only
// speaks its contract.
package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Client talks to the record store.
type Client struct {
	http *resty.Client

	// maxRetryElapsed bounds retry of recoverable failures.
	maxRetryElapsed time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// WithMaxRetryElapsed bounds the total time spent retrying one call.
// Tests use a small value to keep retry paths fast.
func WithMaxRetryElapsed(d time.Duration) Option {
	return func(c *Client) { c.maxRetryElapsed = d }
}

// New creates a Client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(15 * time.Second),
		maxRetryElapsed: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is a non-2xx response from the record store.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("record store status %d: %s", e.StatusCode, e.Body)
}

// recoverable reports whether an error is worth retrying: network failures
// and 5xx responses are; 4xx responses are not.
func recoverable(err error) bool {
	if se, ok := err.(*StatusError); ok {
		return se.StatusCode >= 500
	}
	return true
}

// do executes one request with exponential-backoff retry on recoverable
// failures. result, when non-nil, receives the decoded success body.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	requestID := uuid.NewString()

	call := func() error {
		req := c.http.R().
			SetContext(ctx).
			SetHeader("X-Request-ID", requestID)
		if body != nil {
			req.SetBody(body)
		}
		if result != nil {
			req.SetResult(result)
		}

		resp, err := req.Execute(method, path)
		if err != nil {
			return err
		}
		if resp.IsError() {
			statusErr := &StatusError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
			if !recoverable(statusErr) {
				return backoff.Permanent(statusErr)
			}
			return statusErr
		}
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(100*time.Millisecond),
		backoff.WithMaxElapsedTime(c.maxRetryElapsed),
	), ctx)

	err := backoff.RetryNotify(call, policy, func(err error, next time.Duration) {
		log.Warn().
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Dur("retry_in", next).
			Msg("record store call failed, retrying")
	})
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the record store.
func IsNotFound(err error) bool {
	for err != nil {
		if se, ok := err.(*StatusError); ok {
			return se.StatusCode == 404
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
