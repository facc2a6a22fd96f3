package scorer

import (
	"context"
	"math"
	"time"

	"github.com/quipshot/phrase-gate/internal/data"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	// Per-word simplicity points
	simplicityCommonWord = 4
	simplicityShortWord  = 3
	simplicityMidWord    = 2
	simplicityLongWord   = 1

	shortWordMaxLen = 4
	midWordMaxLen   = 6
	longWordMaxLen  = 8

	// The per-word average (0-4) scales onto a 0-20 point range.
	simplicityScaleFactor = 5

	// Length bonus bands by word count
	lengthBonusOptimal = 10
	lengthBonusLong    = 5
	lengthBonusSingle  = 3

	optimalWordsMin = 2
	optimalWordsMax = 4
	longWordsMax    = 6
)

// HeuristicsSource is the surface the decision engine and the component
// endpoint need from this scorer.
type HeuristicsSource interface {
	Score(ctx context.Context, phrase string) (*HeuristicsResult, error)
}

// HeuristicsScorer applies the original pool's wordlist heuristics: short
// common words and a guessable word count score high. It is a pure function
// of the phrase string, with no lookups beyond in-process tables.
type HeuristicsScorer struct {
	logger logging.Logger
}

// HeuristicsResult holds the word-simplicity and length-bonus sub-scores.
type HeuristicsResult struct {
	TotalScore int            `json:"total_score"`
	Breakdown  map[string]int `json:"breakdown"`
	Components map[string]any `json:"components"`
	DurationMs int64          `json:"duration_ms"`
}

// NewHeuristicsScorer creates the legacy heuristics scorer.
func NewHeuristicsScorer(logger logging.Logger) *HeuristicsScorer {
	return &HeuristicsScorer{logger: logger}
}

// Score sums word simplicity (0-20) and the length bonus (0-10).
func (s *HeuristicsScorer) Score(_ context.Context, phrase string) (*HeuristicsResult, error) {
	start := time.Now()

	words := textutil.Tokenize(phrase)
	if len(words) == 0 {
		return nil, domain.InvalidInputError("phrase has no scoreable words")
	}

	simplicity := wordSimplicityPoints(words)
	lengthBonus := lengthBonusPoints(len(words))
	total := simplicity + lengthBonus

	result := &HeuristicsResult{
		TotalScore: total,
		Breakdown: map[string]int{
			"word_simplicity_points": simplicity,
			"length_bonus_points":    lengthBonus,
		},
		Components: map[string]any{
			"word_count": len(words),
		},
		DurationMs: time.Since(start).Milliseconds(),
	}

	s.logger.Debug("heuristics scored",
		logging.String("phrase", phrase),
		logging.Int("score", total),
		logging.Int("word_count", len(words)))

	return result, nil
}

// wordSimplicityPoints averages per-word simplicity and scales it to 0-20.
// Common everyday words score highest; long rare words score nothing.
func wordSimplicityPoints(words []string) int {
	sum := 0
	for _, word := range words {
		sum += simplicityFor(word)
	}
	average := float64(sum) / float64(len(words))
	return int(math.Round(average * simplicityScaleFactor))
}

func simplicityFor(word string) int {
	if data.IsCommonWord(word) {
		return simplicityCommonWord
	}
	switch length := len([]rune(word)); {
	case length <= shortWordMaxLen:
		return simplicityShortWord
	case length <= midWordMaxLen:
		return simplicityMidWord
	case length <= longWordMaxLen:
		return simplicityLongWord
	default:
		return 0
	}
}

// lengthBonusPoints rewards the guessable 2-4 word range. Single words get a
// token bonus, 5-6 words half credit, run-on phrases nothing.
func lengthBonusPoints(wordCount int) int {
	switch {
	case wordCount >= optimalWordsMin && wordCount <= optimalWordsMax:
		return lengthBonusOptimal
	case wordCount > optimalWordsMax && wordCount <= longWordsMax:
		return lengthBonusLong
	case wordCount == 1:
		return lengthBonusSingle
	default:
		return 0
	}
}
