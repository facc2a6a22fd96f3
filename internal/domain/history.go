package domain

import (
	"encoding/json"
	"time"
)

// DecisionHistory is the persisted audit record of one scoring decision.
// Component scores are kept as a JSONB blob so thresholds can be re-tuned
// offline without replaying the engine.
type DecisionHistory struct {
	ID               int64           `db:"id" json:"id"`
	SubmissionID     string          `db:"submission_id" json:"submission_id"`
	Phrase           string          `db:"phrase" json:"phrase"`
	NormalizedPhrase string          `db:"normalized_phrase" json:"normalized_phrase"`
	FinalScore       float64         `db:"final_score" json:"final_score"`
	Classification   string          `db:"classification" json:"classification"`
	Recommendation   string          `db:"recommendation" json:"recommendation"`
	Confidence       string          `db:"confidence" json:"confidence"`
	Accepted         bool            `db:"accepted" json:"accepted"`
	ComponentScores  json.RawMessage `db:"component_scores" json:"component_scores,omitempty"`
	Categories       []string        `db:"categories" json:"categories,omitempty"`
	EngineVersion    string          `db:"engine_version" json:"engine_version"`
	DurationMs       int64           `db:"duration_ms" json:"duration_ms"`
	Source           string          `db:"source" json:"source"`
	ScoredAt         time.Time       `db:"scored_at" json:"scored_at"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}

// NewDecisionHistory flattens a decision result into its audit record.
// A nil result returns nil; component score marshalling errors leave the
// blob empty rather than dropping the record.
func NewDecisionHistory(submissionID, source string, result *DecisionResult) *DecisionHistory {
	if result == nil {
		return nil
	}

	history := &DecisionHistory{
		SubmissionID:     submissionID,
		Phrase:           result.Phrase,
		NormalizedPhrase: result.NormalizedPhrase,
		FinalScore:       result.FinalScore,
		Classification:   string(result.QualityClassification),
		Recommendation:   string(result.Decision.Recommendation),
		Confidence:       string(result.Decision.Confidence),
		Accepted:         result.Decision.Accept,
		EngineVersion:    result.EngineVersion,
		DurationMs:       result.Performance.DurationMs,
		Source:           source,
		ScoredAt:         result.ScoredAt,
	}

	if blob, err := json.Marshal(result.ComponentScores); err == nil {
		history.ComponentScores = blob
	}

	if detail, ok := result.ComponentDetails[ComponentCulturalValidation]; ok {
		if provider, ok := detail.(interface{ MatchedCategories() []string }); ok {
			history.Categories = provider.MatchedCategories()
		}
	}

	return history
}
