package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates a configuration that cannot be started with.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedType indicates an unknown strategy, extractor or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorStoreUnavailable indicates the vector store is not configured or unreachable.
	ErrVectorStoreUnavailable = errors.New("vector store unavailable")

	// ErrRerankerUnavailable indicates the cross-encoder is not configured or failed.
	// Search degrades to filter order.
	ErrRerankerUnavailable = errors.New("reranker unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrServiceUnavailable indicates search cannot be served right now.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrBatchFailed indicates an indexing batch exhausted its retry budget.
	ErrBatchFailed = errors.New("batch failed")

	// ErrRateLimited indicates an upstream API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)

// ErrorKind classifies a ServiceError for callers.
type ErrorKind int

// Error kinds.
const (
	KindInvalid ErrorKind = iota + 1
	KindUnavailable
	KindBatch
)

// String returns the string representation.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindUnavailable:
		return "unavailable"
	case KindBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// ServiceError is returned by services when an operation fails as a whole.
type ServiceError struct {
	Op   string
	Kind ErrorKind
	Err  error
}

// NewServiceError builds a ServiceError.
func NewServiceError(op string, kind ErrorKind, err error) *ServiceError {
	return &ServiceError{Op: op, Kind: kind, Err: err}
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error kind, so errors.Is(err, ErrServiceUnavailable)
// holds for every KindUnavailable error.
func (e *ServiceError) Is(target error) bool {
	switch e.Kind {
	case KindUnavailable:
		return target == ErrServiceUnavailable
	case KindBatch:
		return target == ErrBatchFailed
	case KindInvalid:
		return target == ErrInvalidInput
	default:
		return false
	}
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re) || errors.Is(err, ErrRateLimited)
}

// RetryableError marks a transient upstream failure.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}
