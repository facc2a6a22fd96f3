package scorer

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

// DescribabilitySource is the surface the decision engine and the component
// endpoint need from this scorer.
type DescribabilitySource interface {
	Score(ctx context.Context, phrase string) (*DescribabilityResult, error)
}

// DescribabilityScorer estimates how easy a phrase is to explain or act out:
// concrete wording scores high, abstract head nouns are penalized, and a
// recognizable proper name earns a flat bonus.
type DescribabilityScorer struct {
	table  *corpus.ConcretenessTable
	names  *nameListMatcher
	logger logging.Logger
}

// DescribabilityResult holds the three describability sub-scores.
type DescribabilityResult struct {
	TotalScore int            `json:"total_score"`
	Breakdown  map[string]int `json:"breakdown"`
	Components map[string]any `json:"components"`
	DurationMs int64          `json:"duration_ms"`
}

// NewDescribabilityScorer creates a scorer over the given concreteness
// table. The curated brand and place lists back the proper-noun detector.
func NewDescribabilityScorer(logger logging.Logger, table *corpus.ConcretenessTable) *DescribabilityScorer {
	terms := append(data.KnownBrandTerms(), data.KnownPlaceTerms()...)
	return &DescribabilityScorer{
		table:  table,
		names:  newNameListMatcher(terms),
		logger: logger,
	}
}

// Score sums concreteness banding, the proper-noun bonus, and the weak-head
// penalty, floored at zero.
func (s *DescribabilityScorer) Score(_ context.Context, phrase string) (*DescribabilityResult, error) {
	start := time.Now()

	original := strings.TrimSpace(phrase)
	if original == "" {
		return nil, domain.InvalidInputError("phrase is empty after trimming")
	}
	words := textutil.Tokenize(original)

	conc := s.scoreConcreteness(words)

	properPoints := 0
	properMethod, properMatch := s.detectProperNoun(original)
	if properMethod != "" {
		properPoints = properNounBonus
	}

	weakPoints := 0
	weakWord, weakHit := weakHeadMatch(words)
	if weakHit {
		weakPoints = weakHeadPenalty
	}

	total := conc.points + properPoints - weakPoints
	if total < 0 {
		total = 0
	}

	components := map[string]any{
		"concreteness": map[string]any{
			"average":  conc.average,
			"coverage": conc.coverage,
			"found":    conc.found,
			"total":    conc.total,
		},
	}
	if properMethod != "" {
		components["proper_noun"] = map[string]any{
			"method":  properMethod,
			"matched": properMatch,
		}
	}
	if weakHit {
		components["weak_head"] = map[string]any{"word": weakWord}
	}

	result := &DescribabilityResult{
		TotalScore: total,
		Breakdown: map[string]int{
			"concreteness_points": conc.points,
			"proper_noun_points":  properPoints,
			"weak_head_points":    -weakPoints,
		},
		Components: components,
		DurationMs: time.Since(start).Milliseconds(),
	}

	s.logger.Debug("describability scored",
		logging.String("phrase", phrase),
		logging.Int("score", total),
		logging.Float64("concreteness_avg", conc.average))

	return result, nil
}

// scoreConcreteness averages the ratings of the words the table knows.
// A missing table reads as zero coverage, not an error.
func (s *DescribabilityScorer) scoreConcreteness(words []string) concretenessOutcome {
	outcome := concretenessOutcome{total: len(words)}
	if s.table == nil || len(words) == 0 {
		return outcome
	}

	sum := 0.0
	for _, word := range words {
		if rating, ok := s.table.Lookup(word); ok {
			sum += rating
			outcome.found++
		}
	}
	if outcome.found > 0 {
		outcome.average = roundRating(sum / float64(outcome.found))
		outcome.coverage = float64(outcome.found) / float64(outcome.total)
	}
	outcome.points = bandConcreteness(outcome.average, outcome.found)
	return outcome
}

// detectProperNoun runs the original-casing patterns first, then the curated
// name lists. The bonus is flat, so only the first matching method reports.
func (s *DescribabilityScorer) detectProperNoun(original string) (method, matched string) {
	if capitalizedPairPattern.MatchString(original) {
		return properNounMethodCapitalizedPair, strings.TrimSpace(capitalizedPairPattern.FindString(original))
	}
	if hasHonorificName(original) {
		return properNounMethodHonorificName, original
	}
	if term, ok := s.names.match(textutil.Normalize(original)); ok {
		return properNounMethodKnownName, term
	}
	return "", ""
}

// roundRating keeps reported averages at two decimals.
func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
