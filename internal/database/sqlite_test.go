//nolint:testpackage // Testing internal database requires same package access
package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quipshot/phrase-gate/internal/domain"
)

func newTestReviewStore(t *testing.T) *ReviewStore {
	store, err := NewReviewStore(":memory:")
	if err != nil {
		t.Fatalf("NewReviewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func reviewItem(phrase string, score float64, recommendation string) *domain.ReviewItem {
	result := &domain.DecisionResult{
		Phrase:                phrase,
		NormalizedPhrase:      phrase,
		FinalScore:            score,
		QualityClassification: domain.QualityAcceptable,
		Decision: domain.Verdict{
			Accept:         domain.Recommendation(recommendation).Accepted(),
			Recommendation: domain.Recommendation(recommendation),
			Confidence:     domain.ConfidenceMedium,
			Reasoning:      "test reasoning",
		},
		ScoredAt: time.Now(),
	}
	return domain.NewReviewItem(result)
}

func TestNewReviewItem_StatusFromRecommendation(t *testing.T) {
	tests := []struct {
		recommendation string
		wantStatus     string
	}{
		{"auto_accept", domain.ReviewApproved},
		{"likely_accept", domain.ReviewPending},
		{"conditional_accept", domain.ReviewPending},
		{"likely_reject", domain.ReviewPending},
		{"auto_reject", domain.ReviewRejected},
	}

	for _, tt := range tests {
		item := reviewItem("taylor swift", 75, tt.recommendation)
		if item.Status != tt.wantStatus {
			t.Errorf("recommendation %s: status = %s, want %s",
				tt.recommendation, item.Status, tt.wantStatus)
		}
	}
}

func TestReviewStore_SaveAndList(t *testing.T) {
	store := newTestReviewStore(t)
	ctx := context.Background()

	items := []*domain.ReviewItem{
		reviewItem("taylor swift", 88, "auto_accept"),
		reviewItem("bungee jumping", 65, "conditional_accept"),
		reviewItem("quantum flux capacitor", 22, "auto_reject"),
	}
	if err := store.SaveBatch(ctx, items); err != nil {
		t.Fatalf("SaveBatch failed: %v", err)
	}

	all, err := store.ListByStatus(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	// Highest score first.
	if all[0].Phrase != "taylor swift" {
		t.Errorf("expected taylor swift first, got %s", all[0].Phrase)
	}

	pending, err := store.ListByStatus(ctx, domain.ReviewPending, 0)
	if err != nil {
		t.Fatalf("ListByStatus(pending) failed: %v", err)
	}
	if len(pending) != 1 || pending[0].Phrase != "bungee jumping" {
		t.Errorf("expected only bungee jumping pending, got %+v", pending)
	}
	if pending[0].ReviewedAt != nil {
		t.Error("pending row should have no reviewed_at")
	}
}

func TestReviewStore_RescoreKeepsTriageStatus(t *testing.T) {
	store := newTestReviewStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, reviewItem("bungee jumping", 65, "conditional_accept")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.UpdateStatus(ctx, "bungee jumping", domain.ReviewApproved); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	// Re-score with a different result.
	if err := store.Save(ctx, reviewItem("bungee jumping", 71, "likely_accept")); err != nil {
		t.Fatalf("re-save failed: %v", err)
	}

	rows, err := store.ListByStatus(ctx, domain.ReviewApproved, 0)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected approved row to survive re-score, got %d rows", len(rows))
	}
	if rows[0].FinalScore != 71 {
		t.Errorf("expected refreshed score 71, got %.1f", rows[0].FinalScore)
	}
	if rows[0].ReviewedAt == nil {
		t.Error("expected reviewed_at to be set after triage")
	}
}

func TestReviewStore_UpdateStatus(t *testing.T) {
	store := newTestReviewStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, reviewItem("ice cream truck", 70, "likely_accept")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.UpdateStatus(ctx, "ice cream truck", "maybe"); err == nil {
		t.Error("expected error for unknown status")
	}

	err := store.UpdateStatus(ctx, "no such phrase", domain.ReviewRejected)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing phrase, got %v", err)
	}

	if err := store.UpdateStatus(ctx, "ice cream truck", domain.ReviewRejected); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	counts, err := store.CountByStatus(ctx)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts[domain.ReviewRejected] != 1 {
		t.Errorf("expected 1 rejected row, got %d", counts[domain.ReviewRejected])
	}
}
