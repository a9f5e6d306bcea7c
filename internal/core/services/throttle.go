package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/logger"
)

// RetryPolicy bounds retries of transient upstream failures.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseBackoff is the wait before the first retry. It doubles per retry.
	BaseBackoff time.Duration

	// MaxBackoff caps a single wait. Zero means no cap.
	MaxBackoff time.Duration
}

// DefaultRetryPolicy retries three times starting at 500ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseBackoff: 500 * time.Millisecond, MaxBackoff: 30 * time.Second}
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	d := p.BaseBackoff << attempt
	if d <= 0 || (p.MaxBackoff > 0 && d > p.MaxBackoff) {
		return p.MaxBackoff
	}
	return d
}

// Throttle paces calls to an upstream service with a token bucket and
// pauses every caller after the upstream reports a rate limit.
type Throttle struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewThrottle creates a throttle allowing rps calls per second.
// A non-positive rps disables pacing.
func NewThrottle(rps float64, burst int) *Throttle {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst < 1 {
		burst = 1
	}
	return &Throttle{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a call may be made.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	retryAt := t.retryAt
	t.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return t.limiter.Wait(ctx)
}

// Pause holds every caller back for d.
func (t *Throttle) Pause(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if until := time.Now().Add(d); until.After(t.retryAt) {
		t.retryAt = until
	}
}

// Do calls fn, retrying retryable errors with exponential backoff.
// Non-retryable errors and context cancellation return immediately.
func (t *Throttle) Do(ctx context.Context, policy RetryPolicy, op string, fn func(context.Context) error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if werr := t.Wait(ctx); werr != nil {
			return werr
		}
		err = fn(ctx)
		if err == nil || !domain.IsRetryable(err) || attempt >= policy.MaxRetries {
			return err
		}

		wait := policy.backoff(attempt)
		if errors.Is(err, domain.ErrRateLimited) {
			t.Pause(wait)
		}
		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v", op, attempt+1, policy.MaxRetries+1, wait, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
