package domain

import "time"

// QualityClassification is the discrete tier derived from the final score.
type QualityClassification string

const (
	QualityExcellent    QualityClassification = "excellent"
	QualityGood         QualityClassification = "good"
	QualityAcceptable   QualityClassification = "acceptable"
	QualityPoor         QualityClassification = "poor"
	QualityUnacceptable QualityClassification = "unacceptable"
)

// Recommendation is the engine's accept/review/reject verdict.
type Recommendation string

const (
	RecommendAutoAccept        Recommendation = "auto_accept"
	RecommendLikelyAccept      Recommendation = "likely_accept"
	RecommendConditionalAccept Recommendation = "conditional_accept"
	RecommendLikelyReject      Recommendation = "likely_reject"
	RecommendAutoReject        Recommendation = "auto_reject"
)

// Confidence expresses how certain the engine is about its recommendation.
// Scores deep in either tail are high confidence; mid-range scores are low.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Component names used as keys in component score and detail maps.
const (
	ComponentDistinctiveness    = "distinctiveness"
	ComponentDescribability     = "describability"
	ComponentLegacyHeuristics   = "legacy_heuristics"
	ComponentCulturalValidation = "cultural_validation"
)

// CulturalClassification buckets the cultural validation total for reporting.
type CulturalClassification string

const (
	CulturalHighlyPopular     CulturalClassification = "highly_popular"
	CulturalModeratelyPopular CulturalClassification = "moderately_popular"
	CulturalObscure           CulturalClassification = "obscure"
)

// Distinctiveness match types.
const (
	MatchExact    = "exact"
	MatchAlias    = "alias"
	MatchNotFound = "not_found"
)

// ComponentScore describes one scorer's contribution to the final score.
// Contribution is the 0-100-equivalent weighted share; RawScore is the
// scorer's native total before normalization.
type ComponentScore struct {
	RawScore     int     `json:"raw_score"`
	MaxScore     int     `json:"max_score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Error        string  `json:"error,omitempty"`
}

// Verdict is the accept/reject decision block attached to a DecisionResult.
type Verdict struct {
	Accept         bool           `json:"accept"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     Confidence     `json:"confidence"`
	Reasoning      string         `json:"reasoning"`
}

// Performance carries timing observations for a scoring call. Latency above
// target annotates the result; it never fails the call.
type Performance struct {
	DurationMs     int64            `json:"duration_ms"`
	ComponentMs    map[string]int64 `json:"component_ms,omitempty"`
	LatencyWarning string           `json:"latency_warning,omitempty"`
}

// DecisionResult is the aggregate scoring output for one phrase. It is
// deterministic given fixed corpora: no hidden state, fully reproducible
// from the input string.
type DecisionResult struct {
	Phrase                string                    `json:"phrase"`
	NormalizedPhrase      string                    `json:"normalized_phrase"`
	FinalScore            float64                   `json:"final_score"`
	QualityClassification QualityClassification     `json:"quality_classification"`
	Decision              Verdict                   `json:"decision"`
	ComponentScores       map[string]ComponentScore `json:"component_scores"`
	ComponentDetails      map[string]any            `json:"component_details,omitempty"`
	Performance           Performance               `json:"performance"`
	Errors                []string                  `json:"errors,omitempty"`
	EngineVersion         string                    `json:"engine_version,omitempty"`
	ScoredAt              time.Time                 `json:"scored_at"`
}

// Accepted reports whether the recommendation admits the phrase into the
// game pool (auto, likely, or conditional accept).
func (r Recommendation) Accepted() bool {
	switch r {
	case RecommendAutoAccept, RecommendLikelyAccept, RecommendConditionalAccept:
		return true
	default:
		return false
	}
}
