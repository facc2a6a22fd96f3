package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

const (
	defaultDLQRetryIntervalSeconds = 60
	defaultDLQRetryBatchSize       = 50
)

// DeadLetterQueue is the replay surface the retrier drains. Fetching must
// lock the returned entries against concurrent workers.
type DeadLetterQueue interface {
	FetchRetryable(ctx context.Context, limit int) ([]domain.DeadLetterEntry, error)
	Remove(ctx context.Context, submissionID string) error
	UpdateRetryCount(ctx context.Context, submissionID, errorMsg string) error
	MarkExhausted(ctx context.Context, submissionID string) error
	Count(ctx context.Context) (int64, error)
}

// DLQRetrier periodically replays dead-lettered submissions through the
// scoring engine and writes recovered decisions back to the store.
type DLQRetrier struct {
	queue     DeadLetterQueue
	store     SubmissionStore
	scorer    PhraseScorer
	telemetry *telemetry.Provider
	logger    logging.Logger

	batchSize int
	interval  time.Duration
	running   bool
	stopChan  chan struct{}
}

// DLQRetrierConfig holds retrier configuration.
type DLQRetrierConfig struct {
	BatchSize int
	Interval  time.Duration
}

// NewDLQRetrier creates a dead-letter retry worker.
func NewDLQRetrier(
	logger logging.Logger,
	queue DeadLetterQueue,
	store SubmissionStore,
	scorer PhraseScorer,
	tp *telemetry.Provider,
	config DLQRetrierConfig,
) *DLQRetrier {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultDLQRetryBatchSize
	}
	if config.Interval <= 0 {
		config.Interval = defaultDLQRetryIntervalSeconds * time.Second
	}

	return &DLQRetrier{
		queue:     queue,
		store:     store,
		scorer:    scorer,
		telemetry: tp,
		logger:    logger,
		batchSize: config.BatchSize,
		interval:  config.Interval,
		stopChan:  make(chan struct{}),
	}
}

// Start starts the retry loop in a background goroutine.
func (r *DLQRetrier) Start(ctx context.Context) error {
	if r.running {
		return errors.New("DLQ retrier is already running")
	}

	r.running = true
	r.logger.Info("DLQ retrier starting",
		logging.Int("batch_size", r.batchSize),
		logging.Duration("interval", r.interval))

	go r.run(ctx)

	return nil
}

// Stop stops the retrier.
func (r *DLQRetrier) Stop() {
	if !r.running {
		return
	}

	r.logger.Info("DLQ retrier stopping")
	close(r.stopChan)
	r.running = false
}

// IsRunning returns whether the retrier is currently running.
func (r *DLQRetrier) IsRunning() bool {
	return r.running
}

func (r *DLQRetrier) run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("DLQ retrier stopped due to context cancellation")
			return
		case <-r.stopChan:
			r.logger.Info("DLQ retrier stopped")
			return
		case <-ticker.C:
			if err := r.processRetries(ctx); err != nil {
				r.logger.Error("failed to process DLQ retries", logging.Error(err))
			}
		}
	}
}

// processRetries drains one batch of retryable entries. Each entry is
// re-scored independently; one entry's failure never blocks the rest.
func (r *DLQRetrier) processRetries(ctx context.Context) error {
	entries, err := r.queue.FetchRetryable(ctx, r.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch retryable entries: %w", err)
	}

	if len(entries) > 0 {
		r.logger.Info("retrying dead-lettered submissions", logging.Int("count", len(entries)))
		for i := range entries {
			r.retryEntry(ctx, &entries[i])
		}
	}

	r.updateDepth(ctx)
	return nil
}

func (r *DLQRetrier) retryEntry(ctx context.Context, entry *domain.DeadLetterEntry) {
	result, err := r.scorer.ScorePhrase(ctx, entry.Phrase)
	if err == nil {
		err = r.store.UpdateDecision(ctx, entry.SubmissionID, result)
	}

	if err != nil {
		r.recordFailure(ctx, entry, err)
		return
	}

	if err := r.queue.Remove(ctx, entry.SubmissionID); err != nil {
		r.logger.Warn("failed to remove replayed DLQ entry",
			logging.String("submission_id", entry.SubmissionID),
			logging.Error(err))
	}

	if r.telemetry != nil {
		r.telemetry.RecordDLQProcessed(ctx)
	}

	r.logger.Info("dead-lettered submission recovered",
		logging.String("submission_id", entry.SubmissionID),
		logging.Int("retry_count", entry.RetryCount))
}

// recordFailure books the failed attempt. A permanently invalid phrase or an
// exhausted retry budget parks the entry; anything else reschedules it.
func (r *DLQRetrier) recordFailure(ctx context.Context, entry *domain.DeadLetterEntry, cause error) {
	errorCode := domain.ClassifyError(cause)
	exhausted := entry.RetryCount+1 >= entry.MaxRetries || errorCode == domain.ErrorCodeInvalidPhrase

	if exhausted {
		if err := r.queue.MarkExhausted(ctx, entry.SubmissionID); err != nil {
			r.logger.Error("failed to mark DLQ entry exhausted",
				logging.String("submission_id", entry.SubmissionID),
				logging.Error(err))
			return
		}
		if r.telemetry != nil {
			r.telemetry.RecordDLQExhausted(ctx)
		}
		r.logger.Error("giving up on dead-lettered submission",
			logging.String("submission_id", entry.SubmissionID),
			logging.String("error_code", string(errorCode)),
			logging.Int("retry_count", entry.RetryCount+1),
			logging.Error(cause))
		return
	}

	if err := r.queue.UpdateRetryCount(ctx, entry.SubmissionID, cause.Error()); err != nil {
		r.logger.Error("failed to update DLQ retry count",
			logging.String("submission_id", entry.SubmissionID),
			logging.Error(err))
		return
	}

	r.logger.Warn("DLQ retry failed, rescheduled",
		logging.String("submission_id", entry.SubmissionID),
		logging.String("error_code", string(errorCode)),
		logging.Int("retry_count", entry.RetryCount+1),
		logging.Error(cause))
}

func (r *DLQRetrier) updateDepth(ctx context.Context) {
	if r.telemetry == nil {
		return
	}
	count, err := r.queue.Count(ctx)
	if err != nil {
		r.logger.Debug("failed to count DLQ depth", logging.Error(err))
		return
	}
	r.telemetry.SetDLQDepth(int(count))
}
