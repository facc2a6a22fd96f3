package scorer

import (
	"context"
	"time"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/popularity"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

// CulturalSource is the surface the decision engine and the component
// endpoint need from this scorer.
type CulturalSource interface {
	Score(ctx context.Context, phrase string) (*CulturalResult, error)
}

// CulturalScorer estimates how widely recognized a phrase is: a curated
// category hit, banded popularity, and a language-coverage bonus that can
// push the total past the nominal maximum.
type CulturalScorer struct {
	categories *categoryMatcher
	popularity popularity.Source
	logger     logging.Logger
}

// CulturalResult holds the cultural validation sub-scores and the derived
// classification.
type CulturalResult struct {
	TotalScore     int                           `json:"total_score"`
	Classification domain.CulturalClassification `json:"cultural_classification"`
	Breakdown      map[string]int                `json:"breakdown"`
	Components     map[string]any                `json:"components"`
	DurationMs     int64                         `json:"duration_ms"`
}

// NewCulturalScorer creates a scorer over the category set and popularity
// source.
func NewCulturalScorer(logger logging.Logger, set *corpus.CategorySet, source popularity.Source) *CulturalScorer {
	return &CulturalScorer{
		categories: newCategoryMatcher(set),
		popularity: source,
		logger:     logger,
	}
}

// Score combines the primary category boost, banded popularity points, and
// the uncapped language bonus. A failed popularity estimate contributes
// zero and an error note, never a scoring failure.
func (s *CulturalScorer) Score(ctx context.Context, phrase string) (*CulturalResult, error) {
	start := time.Now()

	normalized := textutil.Normalize(phrase)
	if normalized == "" {
		return nil, domain.InvalidInputError("phrase is empty after normalization")
	}

	components := make(map[string]any)

	categoryPoints := 0
	primary, primaryTerm, matched := s.categories.match(normalized)
	if primary != "" {
		categoryPoints = categoryBoostPoints
		components["primary_category"] = primary
		components["matched_term"] = primaryTerm
		components["matched_categories"] = matched
	}

	popPoints, langPoints := 0, 0
	estimate, err := s.popularity.Estimate(ctx, phrase)
	if err != nil {
		s.logger.Warn("popularity estimate failed, scoring without it",
			logging.String("phrase", phrase),
			logging.Error(err))
		components["popularity_error"] = err.Error()
	} else {
		popPoints = popularityPoints(estimate.Engagement)
		langPoints = languageBonusPoints(estimate.Languages)
		components["engagement"] = estimate.Engagement
		components["languages"] = estimate.Languages
		components["popularity_origin"] = estimate.Origin
	}

	total := categoryPoints + popPoints + langPoints

	result := &CulturalResult{
		TotalScore:     total,
		Classification: classifyCultural(total),
		Breakdown: map[string]int{
			"category_boost_points": categoryPoints,
			"popularity_points":     popPoints,
			"language_bonus_points": langPoints,
		},
		Components: components,
		DurationMs: time.Since(start).Milliseconds(),
	}

	s.logger.Debug("cultural validation scored",
		logging.String("phrase", phrase),
		logging.Int("score", total),
		logging.String("classification", string(result.Classification)))

	return result, nil
}

// MatchedCategories returns the category names the phrase matched, if any.
func (r *CulturalResult) MatchedCategories() []string {
	matched, _ := r.Components["matched_categories"].([]string)
	return matched
}
