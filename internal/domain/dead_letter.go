package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDeadLetterEntry is returned when creating a DLQ entry with invalid fields.
var ErrInvalidDeadLetterEntry = errors.New("invalid dead letter entry")

// ErrorCode categorizes DLQ errors for filtering and alerting
type ErrorCode string

const (
	ErrorCodeESTimeout     ErrorCode = "ES_TIMEOUT"
	ErrorCodeESUnavailable ErrorCode = "ES_UNAVAILABLE"
	ErrorCodeCorpus        ErrorCode = "CORPUS_ERROR"
	ErrorCodePopularity    ErrorCode = "POPULARITY_ERROR"
	ErrorCodeScoringPanic  ErrorCode = "SCORING_PANIC"
	ErrorCodeInvalidPhrase ErrorCode = "INVALID_PHRASE"
	ErrorCodeIndexing      ErrorCode = "INDEXING_FAILED"
	ErrorCodeUnknown       ErrorCode = "UNKNOWN"
)

const (
	defaultMaxRetries     = 5
	baseRetryDelaySeconds = 60
	maxRetryDelaySeconds  = 3600 // Cap at 1 hour
)

// DeadLetterEntry represents a submission whose scoring or write-back failed,
// awaiting retry.
type DeadLetterEntry struct {
	ID            string    `db:"id"`
	SubmissionID  string    `db:"submission_id"`
	Phrase        string    `db:"phrase"`
	IndexName     string    `db:"index_name"`
	ErrorMessage  string    `db:"error_message"`
	ErrorCode     ErrorCode `db:"error_code"`
	RetryCount    int       `db:"retry_count"`
	MaxRetries    int       `db:"max_retries"`
	NextRetryAt   time.Time `db:"next_retry_at"`
	CreatedAt     time.Time `db:"created_at"`
	LastAttemptAt time.Time `db:"last_attempt_at"`
}

// NewDeadLetterEntry creates a new DLQ entry with exponential backoff.
// Returns an error if required fields (submissionID, phrase, indexName) are empty.
func NewDeadLetterEntry(submissionID, phrase, indexName, errorMsg string, errorCode ErrorCode) (*DeadLetterEntry, error) {
	if submissionID == "" {
		return nil, fmt.Errorf("%w: submission_id is required", ErrInvalidDeadLetterEntry)
	}
	if phrase == "" {
		return nil, fmt.Errorf("%w: phrase is required", ErrInvalidDeadLetterEntry)
	}
	if indexName == "" {
		return nil, fmt.Errorf("%w: index_name is required", ErrInvalidDeadLetterEntry)
	}

	now := time.Now()
	return &DeadLetterEntry{
		SubmissionID:  submissionID,
		Phrase:        phrase,
		IndexName:     indexName,
		ErrorMessage:  errorMsg,
		ErrorCode:     errorCode,
		RetryCount:    0,
		MaxRetries:    defaultMaxRetries,
		NextRetryAt:   now.Add(time.Duration(baseRetryDelaySeconds) * time.Second),
		CreatedAt:     now,
		LastAttemptAt: now,
	}, nil
}

// NextRetryDelay calculates exponential backoff with cap
// Delays: 1min, 2min, 4min, 8min, 16min (capped at 1hr)
func (d *DeadLetterEntry) NextRetryDelay() time.Duration {
	multiplier := 1 << d.RetryCount // 2^retryCount
	delaySeconds := min(baseRetryDelaySeconds*multiplier, maxRetryDelaySeconds)
	return time.Duration(delaySeconds) * time.Second
}

// ShouldRetry returns true if retries remain
func (d *DeadLetterEntry) ShouldRetry() bool {
	return d.RetryCount < d.MaxRetries
}

// IsExhausted returns true if all retries have been used
func (d *DeadLetterEntry) IsExhausted() bool {
	return d.RetryCount >= d.MaxRetries
}

// IncrementRetry updates retry state for next attempt
func (d *DeadLetterEntry) IncrementRetry(newError string) {
	d.RetryCount++
	d.LastAttemptAt = time.Now()
	d.ErrorMessage = newError
	d.NextRetryAt = time.Now().Add(d.NextRetryDelay())
}

// String returns a debug representation
func (d *DeadLetterEntry) String() string {
	return fmt.Sprintf("DLQ[%s] submission=%s phrase=%q retries=%d/%d next=%s error=%s",
		d.ID, d.SubmissionID, d.Phrase, d.RetryCount, d.MaxRetries,
		d.NextRetryAt.Format(time.RFC3339), d.ErrorCode)
}

// DLQStats holds dead-letter queue statistics
type DLQStats struct {
	Pending     int64      `json:"pending"`
	Exhausted   int64      `json:"exhausted"`
	Ready       int64      `json:"ready"`
	AvgRetries  float64    `json:"avg_retries"`
	OldestEntry *time.Time `json:"oldest_entry,omitempty"`
}

// DLQErrorCount is a per-error-code tally of queued entries
type DLQErrorCount struct {
	ErrorCode string `json:"error_code" db:"error_code"`
	Count     int64  `json:"count" db:"count"`
}

// ClassifyError maps an error to an ErrorCode. Text matching backs up the
// sentinel checks because batch entries carry errors as strings, which
// strips the wrapping.
func ClassifyError(err error) ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return ErrorCodeInvalidPhrase
	case errors.Is(err, ErrComponentUnavailable):
		return ErrorCodeCorpus
	}

	errStr := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errStr, "invalid input"):
		return ErrorCodeInvalidPhrase
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline exceeded"):
		return ErrorCodeESTimeout
	case strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "connection reset"):
		return ErrorCodeESUnavailable
	case strings.Contains(errStr, "corpus"), strings.Contains(errStr, "concreteness"):
		return ErrorCodeCorpus
	case strings.Contains(errStr, "popularity"), strings.Contains(errStr, "pageview"):
		return ErrorCodePopularity
	case strings.Contains(errStr, "panic"):
		return ErrorCodeScoringPanic
	case strings.Contains(errStr, "index"), strings.Contains(errStr, "bulk"):
		return ErrorCodeIndexing
	default:
		return ErrorCodeUnknown
	}
}
