package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceError_Is(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		kind     ErrorKind
		sentinel error
	}{
		{KindUnavailable, ErrServiceUnavailable},
		{KindBatch, ErrBatchFailed},
		{KindInvalid, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("search: %w", NewServiceError("vector query", tt.kind, cause))

			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, cause)

			var serr *ServiceError
			assert.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.kind, serr.Kind)
		})
	}

	assert.NotErrorIs(t, NewServiceError("op", KindBatch, cause), ErrServiceUnavailable)
}

func TestServiceError_Error(t *testing.T) {
	err := NewServiceError("embed batch", KindBatch, errors.New("timeout"))
	assert.Equal(t, "embed batch: batch: timeout", err.Error())
}

func TestRetryable(t *testing.T) {
	assert.Nil(t, Retryable(nil))

	cause := fmt.Errorf("status 503: %w", ErrEmbeddingUnavailable)
	err := fmt.Errorf("embed: %w", Retryable(cause))

	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, ErrEmbeddingUnavailable)
	assert.Equal(t, "embed: status 503: embedding service unavailable", err.Error())

	assert.True(t, IsRetryable(fmt.Errorf("429: %w", ErrRateLimited)))
	assert.False(t, IsRetryable(cause))
}
