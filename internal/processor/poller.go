package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

const (
	defaultPollIntervalSeconds = 30
	defaultPollBatchSize       = 100
)

// SubmissionStore is the intake surface the poller reads pending phrases
// from and writes decisions back to.
type SubmissionStore interface {
	// FetchPending returns up to limit submissions awaiting scoring.
	FetchPending(ctx context.Context, limit int) ([]*domain.PhraseSubmission, error)

	// UpdateDecision writes the decision back and marks the submission scored.
	UpdateDecision(ctx context.Context, submissionID string, result *domain.DecisionResult) error

	// MarkFailed marks a submission that could not be scored.
	MarkFailed(ctx context.Context, submissionID, reason string) error
}

// HistoryStore records finished decisions for audit and threshold tuning.
type HistoryStore interface {
	SaveDecisionBatch(ctx context.Context, records []*domain.DecisionHistory) error
}

// DeadLetterStore captures submissions whose scoring or write-back failed.
type DeadLetterStore interface {
	Save(ctx context.Context, entry *domain.DeadLetterEntry) error
}

// Poller polls the submission store for pending phrases and scores them.
type Poller struct {
	store       SubmissionStore
	history     HistoryStore
	deadLetters DeadLetterStore
	batch       *BatchProcessor
	rateLimiter *RateLimiter
	telemetry   *telemetry.Provider
	logger      logging.Logger

	batchSize    int
	pollInterval time.Duration
	indexName    string
	running      bool
	stopChan     chan struct{}
}

// PollerConfig holds poller configuration.
type PollerConfig struct {
	BatchSize    int
	PollInterval time.Duration
	IndexName    string
}

// NewPoller creates a submission poller. The history and dead-letter stores
// are optional; a nil store disables that concern.
func NewPoller(
	logger logging.Logger,
	store SubmissionStore,
	history HistoryStore,
	deadLetters DeadLetterStore,
	batch *BatchProcessor,
	rateLimiter *RateLimiter,
	tp *telemetry.Provider,
	config PollerConfig,
) *Poller {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultPollBatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollIntervalSeconds * time.Second
	}

	return &Poller{
		store:        store,
		history:      history,
		deadLetters:  deadLetters,
		batch:        batch,
		rateLimiter:  rateLimiter,
		telemetry:    tp,
		logger:       logger,
		batchSize:    config.BatchSize,
		pollInterval: config.PollInterval,
		indexName:    config.IndexName,
		stopChan:     make(chan struct{}),
	}
}

// Start starts the polling loop in a background goroutine.
func (p *Poller) Start(ctx context.Context) error {
	if p.running {
		return errors.New("poller is already running")
	}

	p.running = true
	p.logger.Info("submission poller starting",
		logging.Int("batch_size", p.batchSize),
		logging.Duration("poll_interval", p.pollInterval))

	go p.run(ctx)

	return nil
}

// Stop stops the poller.
func (p *Poller) Stop() {
	if !p.running {
		return
	}

	p.logger.Info("submission poller stopping")
	close(p.stopChan)
	p.running = false
}

// IsRunning returns whether the poller is currently running.
func (p *Poller) IsRunning() bool {
	return p.running
}

// GetStats returns poller statistics.
func (p *Poller) GetStats() map[string]any {
	return map[string]any{
		"running":       p.running,
		"batch_size":    p.batchSize,
		"poll_interval": p.pollInterval.String(),
	}
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	// Process immediately on start
	if err := p.processPending(ctx); err != nil {
		p.logger.Error("failed to process pending submissions on startup", logging.Error(err))
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("submission poller stopped due to context cancellation")
			return
		case <-p.stopChan:
			p.logger.Info("submission poller stopped")
			return
		case <-ticker.C:
			if err := p.processPending(ctx); err != nil {
				p.logger.Error("failed to process pending submissions", logging.Error(err))
			}
		}
	}
}

// processPending fetches one batch of pending submissions, scores it, and
// writes decisions, history, and dead letters.
func (p *Poller) processPending(ctx context.Context) error {
	if p.rateLimiter != nil {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	p.logger.Debug("polling for pending submissions", logging.Int("batch_size", p.batchSize))

	pending, err := p.store.FetchPending(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending submissions: %w", err)
	}

	if p.telemetry != nil {
		p.telemetry.SetPendingSubmissions(len(pending))
	}

	if len(pending) == 0 {
		p.logger.Debug("no pending submissions found")
		return nil
	}

	p.logger.Info("found pending submissions", logging.Int("count", len(pending)))

	scoreable, phrases := p.filterBlank(ctx, pending)
	if len(scoreable) == 0 {
		return nil
	}

	if p.telemetry != nil {
		for _, submission := range scoreable {
			if !submission.SubmittedAt.IsZero() {
				p.telemetry.RecordIntakeLag(ctx, submission.SubmittedAt)
			}
		}
	}

	result, err := p.batch.Process(ctx, phrases)
	if err != nil {
		return fmt.Errorf("batch scoring failed: %w", err)
	}

	p.applyDecisions(ctx, scoreable, result.Entries)

	return nil
}

// filterBlank marks blank submissions failed up front, so the scoreable
// slice stays aligned one-to-one with the batch entries.
func (p *Poller) filterBlank(ctx context.Context, pending []*domain.PhraseSubmission) ([]*domain.PhraseSubmission, []string) {
	scoreable := make([]*domain.PhraseSubmission, 0, len(pending))
	phrases := make([]string, 0, len(pending))

	for _, submission := range pending {
		if strings.TrimSpace(submission.Phrase) == "" {
			p.logger.Warn("blank submission skipped", logging.String("submission_id", submission.ID))
			if err := p.store.MarkFailed(ctx, submission.ID, "blank phrase"); err != nil {
				p.logger.Error("failed to mark blank submission",
					logging.String("submission_id", submission.ID),
					logging.Error(err))
			}
			continue
		}
		scoreable = append(scoreable, submission)
		phrases = append(phrases, submission.Phrase)
	}

	return scoreable, phrases
}

// applyDecisions writes each entry's outcome back to the submission store
// and records history. Write-back failures dead-letter the submission;
// history failures only warn.
func (p *Poller) applyDecisions(ctx context.Context, submissions []*domain.PhraseSubmission, entries []BatchEntry) {
	histories := make([]*domain.DecisionHistory, 0, len(entries))

	for i, entry := range entries {
		submission := submissions[i]

		if entry.Result == nil {
			p.handleFailure(ctx, submission, errors.New(entry.Error))
			continue
		}

		if err := p.store.UpdateDecision(ctx, submission.ID, entry.Result); err != nil {
			p.logger.Error("failed to write decision back",
				logging.String("submission_id", submission.ID),
				logging.Error(err))
			p.handleFailure(ctx, submission, err)
			continue
		}

		if p.telemetry != nil {
			p.telemetry.RecordDecision(ctx, submission.Source,
				string(entry.Result.Decision.Recommendation),
				string(entry.Result.QualityClassification),
				entry.Result.FinalScore,
				time.Duration(entry.Result.Performance.DurationMs)*time.Millisecond)
		}

		if history := domain.NewDecisionHistory(submission.ID, submission.Source, entry.Result); history != nil {
			histories = append(histories, history)
		}
	}

	p.saveHistory(ctx, histories)
}

// handleFailure marks the submission failed and, when a dead-letter store is
// wired, enqueues it for retry. Neither failure aborts the batch.
func (p *Poller) handleFailure(ctx context.Context, submission *domain.PhraseSubmission, cause error) {
	errorCode := domain.ClassifyError(cause)

	if p.telemetry != nil {
		p.telemetry.RecordScoringFailure(ctx, submission.Source, string(errorCode))
	}

	if err := p.store.MarkFailed(ctx, submission.ID, cause.Error()); err != nil {
		p.logger.Error("failed to mark submission failed",
			logging.String("submission_id", submission.ID),
			logging.Error(err))
	}

	// Invalid phrases are final; everything else is worth a retry.
	if p.deadLetters == nil || errorCode == domain.ErrorCodeInvalidPhrase {
		return
	}

	entry, err := domain.NewDeadLetterEntry(submission.ID, submission.Phrase, p.indexName, cause.Error(), errorCode)
	if err != nil {
		p.logger.Error("failed to build dead letter entry",
			logging.String("submission_id", submission.ID),
			logging.Error(err))
		return
	}

	if err := p.deadLetters.Save(ctx, entry); err != nil {
		p.logger.Error("failed to save dead letter entry",
			logging.String("submission_id", submission.ID),
			logging.Error(err))
		return
	}

	if p.telemetry != nil {
		p.telemetry.RecordDLQEnqueue(ctx, submission.Source, string(errorCode))
	}
}

// saveHistory persists decision records best-effort; losing history never
// fails intake.
func (p *Poller) saveHistory(ctx context.Context, histories []*domain.DecisionHistory) {
	if p.history == nil || len(histories) == 0 {
		return
	}

	p.logger.Debug("saving decision history", logging.Int("count", len(histories)))

	if err := p.history.SaveDecisionBatch(ctx, histories); err != nil {
		p.logger.Warn("failed to save decision history", logging.Error(err))
	}
}
