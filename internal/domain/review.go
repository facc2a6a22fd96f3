package domain

import "time"

// Review status values for locally triaged phrases.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// ReviewItem is a scored phrase persisted in the local review store so
// editors can triage borderline decisions offline.
type ReviewItem struct {
	ID             int64      `db:"id" json:"id"`
	Phrase         string     `db:"phrase" json:"phrase"`
	FinalScore     float64    `db:"final_score" json:"final_score"`
	Quality        string     `db:"quality" json:"quality"`
	Recommendation string     `db:"recommendation" json:"recommendation"`
	Confidence     string     `db:"confidence" json:"confidence"`
	Reasoning      string     `db:"reasoning" json:"reasoning"`
	Status         string     `db:"status" json:"status"`
	ScoredAt       time.Time  `db:"scored_at" json:"scored_at"`
	ReviewedAt     *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// NewReviewItem builds a review row from a decision result. Auto decisions
// are recorded as already resolved; everything in between starts pending.
func NewReviewItem(result *DecisionResult) *ReviewItem {
	status := ReviewPending
	switch result.Decision.Recommendation {
	case RecommendAutoAccept:
		status = ReviewApproved
	case RecommendAutoReject:
		status = ReviewRejected
	}

	return &ReviewItem{
		Phrase:         result.Phrase,
		FinalScore:     result.FinalScore,
		Quality:        string(result.QualityClassification),
		Recommendation: string(result.Decision.Recommendation),
		Confidence:     string(result.Decision.Confidence),
		Reasoning:      result.Decision.Reasoning,
		Status:         status,
		ScoredAt:       result.ScoredAt,
	}
}
