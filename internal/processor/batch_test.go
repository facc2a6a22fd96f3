//nolint:testpackage // Testing internal processor requires same package access
package processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
)

// stubScorer scores phrases with a caller-supplied function and records
// every call.
type stubScorer struct {
	mu    sync.Mutex
	calls []string
	score func(phrase string) (*domain.DecisionResult, error)
}

func (s *stubScorer) ScorePhrase(_ context.Context, phrase string) (*domain.DecisionResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, phrase)
	s.mu.Unlock()

	return s.score(phrase)
}

func acceptedResult(phrase string, score float64, classification domain.QualityClassification) *domain.DecisionResult {
	return &domain.DecisionResult{
		Phrase:                phrase,
		NormalizedPhrase:      strings.ToLower(strings.TrimSpace(phrase)),
		FinalScore:            score,
		QualityClassification: classification,
		Decision: domain.Verdict{
			Accept:         true,
			Recommendation: domain.RecommendLikelyAccept,
			Confidence:     domain.ConfidenceMedium,
		},
		ScoredAt: time.Now().UTC(),
	}
}

func rejectedResult(phrase string, score float64, classification domain.QualityClassification) *domain.DecisionResult {
	result := acceptedResult(phrase, score, classification)
	result.Decision.Accept = false
	result.Decision.Recommendation = domain.RecommendAutoReject
	result.Decision.Confidence = domain.ConfidenceHigh

	return result
}

func newTestBatchProcessor(scorer PhraseScorer, cfg BatchConfig) *BatchProcessor {
	return NewBatchProcessor(logging.NewNop(), scorer, nil, cfg)
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 50, domain.QualityAcceptable), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{Concurrency: 4})

	phrases := make([]string, 25)
	for i := range phrases {
		phrases[i] = fmt.Sprintf("phrase number %d", i)
	}

	result, err := processor.Process(context.Background(), phrases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != len(phrases) {
		t.Fatalf("expected %d entries, got %d", len(phrases), len(result.Entries))
	}

	for i, entry := range result.Entries {
		if entry.Phrase != phrases[i] {
			t.Errorf("entry %d: got phrase %q, want %q", i, entry.Phrase, phrases[i])
		}
		if entry.Result == nil {
			t.Errorf("entry %d: expected a result", i)
			continue
		}
		if entry.Result.Phrase != phrases[i] {
			t.Errorf("entry %d: result scored %q, want %q", i, entry.Result.Phrase, phrases[i])
		}
	}
}

func TestBatchProcessor_SkipsBlankEntries(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 60, domain.QualityGood), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{})

	result, err := processor.Process(context.Background(), []string{"pizza delivery", "", "   ", "taco truck"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Summary.Submitted != 4 {
		t.Errorf("got submitted %d, want 4", result.Summary.Submitted)
	}
	if result.Summary.Skipped != 2 {
		t.Errorf("got skipped %d, want 2", result.Summary.Skipped)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Phrase != "pizza delivery" || result.Entries[1].Phrase != "taco truck" {
		t.Errorf("blank filtering broke ordering: %q, %q",
			result.Entries[0].Phrase, result.Entries[1].Phrase)
	}
}

func TestBatchProcessor_RejectsOversizedBatch(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 50, domain.QualityAcceptable), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{MaxBatchSize: 3})

	result, err := processor.Process(context.Background(), []string{"a b", "c d", "e f", "g h"})
	if !errors.Is(err, domain.ErrBatchSizeExceeded) {
		t.Fatalf("expected ErrBatchSizeExceeded, got %v", err)
	}
	if result != nil {
		t.Error("expected nil result for oversized batch")
	}

	scorer.mu.Lock()
	calls := len(scorer.calls)
	scorer.mu.Unlock()
	if calls != 0 {
		t.Errorf("oversized batch should not score anything, scored %d", calls)
	}
}

func TestBatchProcessor_EntryErrorsDoNotAbortBatch(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		if phrase == "broken phrase" {
			return nil, errors.New("popularity lookup failed")
		}
		return acceptedResult(phrase, 70, domain.QualityGood), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{})

	result, err := processor.Process(context.Background(), []string{"good phrase", "broken phrase", "fine phrase"})
	if err != nil {
		t.Fatalf("per-entry failure should not fail the batch: %v", err)
	}

	if result.Entries[1].Error != "popularity lookup failed" {
		t.Errorf("got entry error %q, want %q", result.Entries[1].Error, "popularity lookup failed")
	}
	if result.Entries[1].Result != nil {
		t.Error("failed entry should have no result")
	}
	if result.Entries[0].Result == nil || result.Entries[2].Result == nil {
		t.Error("healthy entries should still score")
	}
	if result.Summary.Failed != 1 {
		t.Errorf("got failed %d, want 1", result.Summary.Failed)
	}
	if result.Summary.Scored != 2 {
		t.Errorf("got scored %d, want 2", result.Summary.Scored)
	}
}

func TestBatchProcessor_SummaryStats(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		switch phrase {
		case "taylor swift":
			return acceptedResult(phrase, 85, domain.QualityExcellent), nil
		case "quiet zucchini":
			return rejectedResult(phrase, 25, domain.QualityPoor), nil
		default:
			return nil, errors.New("scorer unavailable")
		}
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{Concurrency: 1})

	result, err := processor.Process(context.Background(), []string{"taylor swift", "quiet zucchini", "boom"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	summary := result.Summary
	if summary.Submitted != 3 || summary.Scored != 2 || summary.Failed != 1 {
		t.Errorf("got submitted=%d scored=%d failed=%d, want 3/2/1",
			summary.Submitted, summary.Scored, summary.Failed)
	}
	if summary.Accepted != 1 {
		t.Errorf("got accepted %d, want 1", summary.Accepted)
	}
	if summary.AcceptRate != 0.5 {
		t.Errorf("got accept rate %.2f, want 0.50", summary.AcceptRate)
	}
	if summary.MeanFinalScore != 55.0 {
		t.Errorf("got mean score %.2f, want 55.00", summary.MeanFinalScore)
	}
	if summary.Classifications["excellent"] != 1 || summary.Classifications["poor"] != 1 {
		t.Errorf("unexpected classification counts: %v", summary.Classifications)
	}
}

func TestBatchProcessor_EmptyBatch(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 50, domain.QualityAcceptable), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{})

	result, err := processor.Process(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
	if result.Summary.Submitted != 0 || result.Summary.Scored != 0 {
		t.Errorf("expected zero summary, got %+v", result.Summary)
	}
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 50, domain.QualityAcceptable), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{Concurrency: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := processor.Process(ctx, []string{"one phrase", "two phrase"})
	if err != nil {
		t.Fatalf("cancellation should surface per entry, not fail the batch: %v", err)
	}

	for i, entry := range result.Entries {
		if entry.Error == "" {
			t.Errorf("entry %d: expected cancellation error", i)
		}
	}
	if result.Summary.Failed != 2 {
		t.Errorf("got failed %d, want 2", result.Summary.Failed)
	}
}

func TestBatchProcessor_Defaults(t *testing.T) {
	scorer := &stubScorer{score: func(phrase string) (*domain.DecisionResult, error) {
		return acceptedResult(phrase, 50, domain.QualityAcceptable), nil
	}}
	processor := newTestBatchProcessor(scorer, BatchConfig{})

	if processor.MaxBatchSize() != defaultMaxBatchSize {
		t.Errorf("got max batch size %d, want %d", processor.MaxBatchSize(), defaultMaxBatchSize)
	}
	if processor.concurrency != defaultBatchConcurrency {
		t.Errorf("got concurrency %d, want %d", processor.concurrency, defaultBatchConcurrency)
	}
}
