package bootstrap

import (
	"errors"
	"fmt"

	"github.com/quipshot/phrase-gate/internal/config"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/processor"
	"github.com/quipshot/phrase-gate/internal/storage"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

// WorkerComponents holds everything the intake worker needs.
type WorkerComponents struct {
	Database  *DatabaseComponents
	Storage   *storage.SubmissionStorage
	Poller    *processor.Poller
	Retrier   *processor.DLQRetrier
	Telemetry *telemetry.Provider
}

// NewWorkerComponents creates all components for the intake worker. The
// submission store is required; Postgres stays optional and adds decision
// history plus dead-letter retries when present.
func NewWorkerComponents(cfg *config.Config, logger logging.Logger) (*WorkerComponents, error) {
	tp := telemetry.NewProvider()

	scoring, err := NewScoringComponents(cfg, logger, tp)
	if err != nil {
		return nil, err
	}

	submissionStorage := SetupElasticsearch(cfg, logger)
	if submissionStorage == nil {
		return nil, errors.New("intake worker requires Elasticsearch; enable it in config")
	}

	dbComps, err := SetupDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	var history processor.HistoryStore
	var deadLetters processor.DeadLetterStore
	if dbComps != nil {
		history = dbComps.HistoryRepo
		deadLetters = dbComps.DeadLetterRepo
	}

	rateLimiter := processor.NewRateLimiter(int(cfg.Poller.RequestsPerSecond), 0, logger)

	poller := processor.NewPoller(
		logger.With(logging.String("component", "poller")),
		submissionStorage,
		history,
		deadLetters,
		scoring.Batch,
		rateLimiter,
		tp,
		processor.PollerConfig{
			BatchSize:    cfg.Poller.BatchSize,
			PollInterval: cfg.Poller.Interval,
			IndexName:    submissionStorage.IndexName(),
		},
	)

	// The DLQ retrier only makes sense with a database to drain.
	var retrier *processor.DLQRetrier
	if dbComps != nil {
		retrier = processor.NewDLQRetrier(
			logger.With(logging.String("component", "dlq_retrier")),
			dbComps.DeadLetterRepo, submissionStorage,
			scoring.Engine, tp, processor.DLQRetrierConfig{})
	}

	return &WorkerComponents{
		Database:  dbComps,
		Storage:   submissionStorage,
		Poller:    poller,
		Retrier:   retrier,
		Telemetry: tp,
	}, nil
}

// Close releases the connections held by the worker components.
func (c *WorkerComponents) Close() {
	if c.Database != nil {
		_ = c.Database.DB.Close()
	}
}
