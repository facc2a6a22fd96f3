// Package processor provides batch scoring and submission intake for the
// phrase-gate service.
package processor

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/telemetry"
)

const (
	defaultBatchConcurrency = 10
	defaultMaxBatchSize     = 500

	percentPrecision = 100.0
)

// PhraseScorer is the scoring surface the processor needs from the engine.
type PhraseScorer interface {
	ScorePhrase(ctx context.Context, phrase string) (*domain.DecisionResult, error)
}

// BatchProcessor scores multiple phrases in parallel using a worker pool.
// Results come back in submission order regardless of which worker finished
// first.
type BatchProcessor struct {
	scorer       PhraseScorer
	concurrency  int
	maxBatchSize int
	logger       logging.Logger
	telemetry    *telemetry.Provider
}

// BatchConfig holds batch processor configuration.
type BatchConfig struct {
	Concurrency  int
	MaxBatchSize int
}

// BatchEntry pairs one submitted phrase with its scoring outcome. Exactly
// one of Result and Error is set.
type BatchEntry struct {
	Phrase string                 `json:"phrase"`
	Result *domain.DecisionResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// BatchSummary aggregates one batch run.
type BatchSummary struct {
	Submitted       int            `json:"submitted"`
	Scored          int            `json:"scored"`
	Skipped         int            `json:"skipped"`
	Failed          int            `json:"failed"`
	Accepted        int            `json:"accepted"`
	AcceptRate      float64        `json:"accept_rate"`
	MeanFinalScore  float64        `json:"mean_final_score"`
	Classifications map[string]int `json:"classifications"`
	DurationMs      int64          `json:"duration_ms"`
}

// BatchResult is the ordered entry list plus its summary.
type BatchResult struct {
	Entries []BatchEntry `json:"entries"`
	Summary BatchSummary `json:"summary"`
}

// NewBatchProcessor creates a batch processor over the given scorer.
func NewBatchProcessor(logger logging.Logger, scorer PhraseScorer, tp *telemetry.Provider, cfg BatchConfig) *BatchProcessor {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultBatchConcurrency
	}
	if cfg.MaxBatchSize <= 0 {
		cfg.MaxBatchSize = defaultMaxBatchSize
	}

	return &BatchProcessor{
		scorer:       scorer,
		concurrency:  cfg.Concurrency,
		maxBatchSize: cfg.MaxBatchSize,
		logger:       logger,
		telemetry:    tp,
	}
}

// MaxBatchSize returns the configured wholesale rejection limit.
func (b *BatchProcessor) MaxBatchSize() int {
	return b.maxBatchSize
}

// Process scores a batch of phrases. Oversized batches are rejected
// wholesale; blank entries are filtered and counted as skipped; every other
// entry produces exactly one result in input order, with validation failures
// reported per entry rather than aborting the batch.
func (b *BatchProcessor) Process(ctx context.Context, phrases []string) (*BatchResult, error) {
	if len(phrases) > b.maxBatchSize {
		return nil, domain.BatchSizeError(len(phrases), b.maxBatchSize)
	}

	start := time.Now()

	kept := make([]string, 0, len(phrases))
	skipped := 0
	for _, phrase := range phrases {
		if strings.TrimSpace(phrase) == "" {
			skipped++
			continue
		}
		kept = append(kept, phrase)
	}

	b.logger.Info("batch scoring started",
		logging.Int("submitted", len(phrases)),
		logging.Int("skipped", skipped),
		logging.Int("concurrency", b.concurrency))

	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(phrases))
	}

	entries := make([]BatchEntry, len(kept))

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(b.concurrency, len(kept))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go b.worker(ctx, jobs, kept, entries, &wg)
	}
	for i := range kept {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	duration := time.Since(start)
	summary := summarizeBatch(entries, len(phrases), skipped, duration)

	b.logger.Info("batch scoring complete",
		logging.Int("scored", summary.Scored),
		logging.Int("failed", summary.Failed),
		logging.Int("accepted", summary.Accepted),
		logging.Float64("accept_rate", summary.AcceptRate),
		logging.Int64("duration_ms", duration.Milliseconds()))

	return &BatchResult{Entries: entries, Summary: summary}, nil
}

// worker pulls entry indexes off the jobs channel, so each result lands in
// its submission slot.
func (b *BatchProcessor) worker(ctx context.Context, jobs <-chan int, phrases []string, entries []BatchEntry, wg *sync.WaitGroup) {
	defer wg.Done()

	for idx := range jobs {
		entry := BatchEntry{Phrase: strings.TrimSpace(phrases[idx])}

		select {
		case <-ctx.Done():
			entry.Error = ctx.Err().Error()
			entries[idx] = entry
			continue
		default:
		}

		result, err := b.scorer.ScorePhrase(ctx, phrases[idx])
		if err != nil {
			entry.Error = err.Error()
			b.logger.Warn("batch entry failed",
				logging.String("phrase", entry.Phrase),
				logging.Error(err))
		} else {
			entry.Result = result
		}
		entries[idx] = entry
	}
}

func summarizeBatch(entries []BatchEntry, submitted, skipped int, duration time.Duration) BatchSummary {
	summary := BatchSummary{
		Submitted:       submitted,
		Skipped:         skipped,
		Classifications: make(map[string]int),
		DurationMs:      duration.Milliseconds(),
	}

	scoreSum := 0.0
	for _, entry := range entries {
		if entry.Result == nil {
			summary.Failed++
			continue
		}
		summary.Scored++
		scoreSum += entry.Result.FinalScore
		summary.Classifications[string(entry.Result.QualityClassification)]++
		if entry.Result.Decision.Accept {
			summary.Accepted++
		}
	}

	if summary.Scored > 0 {
		summary.AcceptRate = roundBatch(float64(summary.Accepted) / float64(summary.Scored))
		summary.MeanFinalScore = roundBatch(scoreSum / float64(summary.Scored))
	}

	return summary
}

func roundBatch(v float64) float64 {
	return math.Round(v*percentPrecision) / percentPrecision
}
