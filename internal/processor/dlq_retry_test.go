//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
)

type mockDeadLetterQueue struct {
	mu        sync.Mutex
	entries   []domain.DeadLetterEntry
	removed   []string
	retried   map[string]string
	exhausted []string
	fetchErr  error
}

func newMockDeadLetterQueue(entries ...domain.DeadLetterEntry) *mockDeadLetterQueue {
	return &mockDeadLetterQueue{
		entries: entries,
		retried: make(map[string]string),
	}
}

func (m *mockDeadLetterQueue) FetchRetryable(_ context.Context, limit int) ([]domain.DeadLetterEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if len(m.entries) > limit {
		return m.entries[:limit], nil
	}

	return m.entries, nil
}

func (m *mockDeadLetterQueue) Remove(_ context.Context, submissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removed = append(m.removed, submissionID)

	return nil
}

func (m *mockDeadLetterQueue) UpdateRetryCount(_ context.Context, submissionID, errorMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retried[submissionID] = errorMsg

	return nil
}

func (m *mockDeadLetterQueue) MarkExhausted(_ context.Context, submissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exhausted = append(m.exhausted, submissionID)

	return nil
}

func (m *mockDeadLetterQueue) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.entries)), nil
}

func deadLetter(t *testing.T, submissionID, phrase string, retryCount int) domain.DeadLetterEntry {
	entry, err := domain.NewDeadLetterEntry(submissionID, phrase, "phrase_submissions", "es timeout", domain.ErrorCodeESTimeout)
	if err != nil {
		t.Fatalf("NewDeadLetterEntry failed: %v", err)
	}
	entry.RetryCount = retryCount

	return *entry
}

func newTestRetrier(queue *mockDeadLetterQueue, store *mockSubmissionStore, scorer *stubScorer) *DLQRetrier {
	return NewDLQRetrier(logging.NewNop(), queue, store, scorer, nil, DLQRetrierConfig{
		BatchSize: 10,
		Interval:  time.Hour,
	})
}

func TestDLQRetrier_RecoversEntry(t *testing.T) {
	queue := newMockDeadLetterQueue(deadLetter(t, "sub-1", "taylor swift", 1))
	store := newMockSubmissionStore()
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 85, domain.QualityExcellent), nil
	}}

	retrier := newTestRetrier(queue, store, scorer)
	if err := retrier.processRetries(context.Background()); err != nil {
		t.Fatalf("processRetries failed: %v", err)
	}

	if store.decisions["sub-1"] == nil {
		t.Error("expected decision written back for sub-1")
	}
	if len(queue.removed) != 1 || queue.removed[0] != "sub-1" {
		t.Errorf("expected sub-1 removed from queue, got %v", queue.removed)
	}
	if len(queue.retried) != 0 || len(queue.exhausted) != 0 {
		t.Errorf("unexpected retry bookkeeping: retried=%v exhausted=%v", queue.retried, queue.exhausted)
	}
}

func TestDLQRetrier_FailedRetryRescheduled(t *testing.T) {
	queue := newMockDeadLetterQueue(deadLetter(t, "sub-1", "taylor swift", 0))
	store := newMockSubmissionStore()
	scorer := &stubScorer{score: func(string) (*domain.DecisionResult, error) {
		return nil, errors.New("connection refused")
	}}

	retrier := newTestRetrier(queue, store, scorer)
	if err := retrier.processRetries(context.Background()); err != nil {
		t.Fatalf("processRetries failed: %v", err)
	}

	if _, ok := queue.retried["sub-1"]; !ok {
		t.Error("expected sub-1 rescheduled")
	}
	if len(queue.exhausted) != 0 {
		t.Errorf("entry with budget left should not be exhausted, got %v", queue.exhausted)
	}
	if len(queue.removed) != 0 {
		t.Errorf("failed entry should stay queued, got removed=%v", queue.removed)
	}
}

func TestDLQRetrier_ExhaustsAfterMaxRetries(t *testing.T) {
	// Retry count 4 of 5: this attempt is the last one.
	queue := newMockDeadLetterQueue(deadLetter(t, "sub-1", "taylor swift", 4))
	store := newMockSubmissionStore()
	scorer := &stubScorer{score: func(string) (*domain.DecisionResult, error) {
		return nil, errors.New("connection refused")
	}}

	retrier := newTestRetrier(queue, store, scorer)
	if err := retrier.processRetries(context.Background()); err != nil {
		t.Fatalf("processRetries failed: %v", err)
	}

	if len(queue.exhausted) != 1 || queue.exhausted[0] != "sub-1" {
		t.Errorf("expected sub-1 exhausted, got %v", queue.exhausted)
	}
	if len(queue.retried) != 0 {
		t.Errorf("exhausted entry should not be rescheduled, got %v", queue.retried)
	}
}

func TestDLQRetrier_InvalidPhraseExhaustsImmediately(t *testing.T) {
	queue := newMockDeadLetterQueue(deadLetter(t, "sub-1", "x", 0))
	store := newMockSubmissionStore()
	scorer := &stubScorer{score: func(string) (*domain.DecisionResult, error) {
		return nil, domain.InvalidInputError("too short")
	}}

	retrier := newTestRetrier(queue, store, scorer)
	if err := retrier.processRetries(context.Background()); err != nil {
		t.Fatalf("processRetries failed: %v", err)
	}

	if len(queue.exhausted) != 1 {
		t.Errorf("invalid phrase should be parked on first failure, got exhausted=%v", queue.exhausted)
	}
}

func TestDLQRetrier_WriteBackFailureRescheduled(t *testing.T) {
	queue := newMockDeadLetterQueue(deadLetter(t, "sub-1", "taylor swift", 0))
	store := newMockSubmissionStore()
	store.updateErr = errors.New("request timeout")
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 85, domain.QualityExcellent), nil
	}}

	retrier := newTestRetrier(queue, store, scorer)
	if err := retrier.processRetries(context.Background()); err != nil {
		t.Fatalf("processRetries failed: %v", err)
	}

	if len(queue.removed) != 0 {
		t.Errorf("entry must stay queued when write-back fails, got removed=%v", queue.removed)
	}
	if _, ok := queue.retried["sub-1"]; !ok {
		t.Error("expected sub-1 rescheduled after write-back failure")
	}
}

func TestDLQRetrier_FetchErrorPropagates(t *testing.T) {
	queue := newMockDeadLetterQueue()
	queue.fetchErr = errors.New("database unavailable")

	retrier := newTestRetrier(queue, newMockSubmissionStore(), &stubScorer{
		score: func(string) (*domain.DecisionResult, error) { return nil, nil },
	})

	if err := retrier.processRetries(context.Background()); err == nil {
		t.Error("expected fetch error to propagate")
	}
}

func TestDLQRetrier_StartAndStop(t *testing.T) {
	queue := newMockDeadLetterQueue()
	retrier := newTestRetrier(queue, newMockSubmissionStore(), &stubScorer{
		score: func(string) (*domain.DecisionResult, error) { return nil, nil },
	})

	if err := retrier.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !retrier.IsRunning() {
		t.Error("expected retrier to be running")
	}
	if err := retrier.Start(context.Background()); err == nil {
		t.Error("expected second Start to fail")
	}

	retrier.Stop()
	if retrier.IsRunning() {
		t.Error("expected retrier to be stopped")
	}
}

func TestDLQRetrier_Defaults(t *testing.T) {
	retrier := NewDLQRetrier(logging.NewNop(), newMockDeadLetterQueue(), newMockSubmissionStore(), &stubScorer{
		score: func(string) (*domain.DecisionResult, error) { return nil, nil },
	}, nil, DLQRetrierConfig{})

	if retrier.batchSize != defaultDLQRetryBatchSize {
		t.Errorf("expected default batch size %d, got %d", defaultDLQRetryBatchSize, retrier.batchSize)
	}
	if retrier.interval != defaultDLQRetryIntervalSeconds*time.Second {
		t.Errorf("expected default interval, got %v", retrier.interval)
	}
}
