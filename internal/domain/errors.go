// Package domain contains the core domain models for the phrase-gate service.
package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for the scoring pipeline. Input-validation errors propagate
// to the immediate caller; component errors are absorbed into degraded
// scores; batch-size errors reject the whole batch.
var (
	// ErrInvalidInput marks a malformed phrase (empty or out of length bounds).
	ErrInvalidInput = errors.New("invalid input phrase")

	// ErrComponentUnavailable marks a lookup corpus that failed to load or
	// is unreachable. The affected scorer degrades to its zero score.
	ErrComponentUnavailable = errors.New("component unavailable")

	// ErrBatchSizeExceeded marks a batch larger than the configured limit.
	ErrBatchSizeExceeded = errors.New("batch size exceeded")

	// ErrNotFound is returned when an entity is not found in the database.
	ErrNotFound = errors.New("entity not found")
)

// InvalidInputError wraps ErrInvalidInput with the offending value and reason.
func InvalidInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}

// BatchSizeError wraps ErrBatchSizeExceeded with the actual and allowed sizes.
func BatchSizeError(size, limit int) error {
	return fmt.Errorf("%w: got %d phrases, limit is %d", ErrBatchSizeExceeded, size, limit)
}
