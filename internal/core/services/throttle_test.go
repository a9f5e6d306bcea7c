package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
)

func TestRetryPolicy_Backoff(t *testing.T) {
	p := RetryPolicy{BaseBackoff: 100 * time.Millisecond, MaxBackoff: 300 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, p.backoff(0))
	assert.Equal(t, 200*time.Millisecond, p.backoff(1))
	assert.Equal(t, 300*time.Millisecond, p.backoff(2))
}

func TestThrottle_Do(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 2, BaseBackoff: time.Millisecond}

	t.Run("success", func(t *testing.T) {
		calls := 0
		err := NewThrottle(0, 1).Do(context.Background(), policy, "op", func(context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient", func(t *testing.T) {
		calls := 0
		err := NewThrottle(0, 1).Do(context.Background(), policy, "op", func(context.Context) error {
			calls++
			if calls < 3 {
				return domain.Retryable(errors.New("503"))
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("permanent error", func(t *testing.T) {
		calls := 0
		err := NewThrottle(0, 1).Do(context.Background(), policy, "op", func(context.Context) error {
			calls++
			return domain.ErrInvalidInput
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled during backoff", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := RetryPolicy{MaxRetries: 5, BaseBackoff: time.Hour}
		err := NewThrottle(0, 1).Do(ctx, slow, "op", func(context.Context) error {
			cancel()
			return domain.ErrRateLimited
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestThrottle_Pause(t *testing.T) {
	th := NewThrottle(0, 1)
	th.Pause(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, th.Wait(ctx), context.DeadlineExceeded)
}
