package scorer

import (
	"context"
	"time"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/domain"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	// Distinctiveness scoring constants
	distinctivenessExactScore = 25
	distinctivenessAliasScore = 20
)

// DistinctivenessSource is the surface the decision engine and the component
// endpoint need from this scorer.
type DistinctivenessSource interface {
	Score(ctx context.Context, phrase string) (*DistinctivenessResult, error)
}

// DistinctivenessScorer checks whether a phrase names a known entity. An
// exact label match is the strongest signal, a single alias word a weaker
// one, anything else scores zero.
type DistinctivenessScorer struct {
	index  *corpus.EntityIndex
	logger logging.Logger
}

// DistinctivenessResult holds the entity-match outcome for one phrase.
type DistinctivenessResult struct {
	TotalScore   int            `json:"total_score"`
	MatchType    string         `json:"match_type"`
	MatchedLabel string         `json:"matched_label,omitempty"`
	MatchedWord  string         `json:"matched_word,omitempty"`
	EntityKind   string         `json:"entity_kind,omitempty"`
	Sitelinks    int            `json:"sitelinks,omitempty"`
	Breakdown    map[string]int `json:"breakdown"`
	DurationMs   int64          `json:"duration_ms"`
}

// NewDistinctivenessScorer creates a scorer over the given entity index.
func NewDistinctivenessScorer(logger logging.Logger, index *corpus.EntityIndex) *DistinctivenessScorer {
	return &DistinctivenessScorer{
		index:  index,
		logger: logger,
	}
}

// Score resolves the phrase against the entity index: exact label first,
// then the first phrase word known as an entity alias. A missing index
// degrades every lookup to not_found rather than failing.
func (s *DistinctivenessScorer) Score(_ context.Context, phrase string) (*DistinctivenessResult, error) {
	start := time.Now()

	normalized := textutil.Normalize(phrase)
	if normalized == "" {
		return nil, domain.InvalidInputError("phrase is empty after normalization")
	}

	result := &DistinctivenessResult{
		MatchType: domain.MatchNotFound,
	}

	if s.index != nil {
		if entity, ok := s.index.LookupLabel(normalized); ok {
			result.TotalScore = distinctivenessExactScore
			result.MatchType = domain.MatchExact
			result.MatchedLabel = entity.Label
			result.EntityKind = entity.Kind
			result.Sitelinks = entity.Sitelinks
		} else if word, entity := s.firstAliasHit(normalized); entity != nil {
			result.TotalScore = distinctivenessAliasScore
			result.MatchType = domain.MatchAlias
			result.MatchedLabel = entity.Label
			result.MatchedWord = word
			result.EntityKind = entity.Kind
			result.Sitelinks = entity.Sitelinks
		}
	}

	result.Breakdown = map[string]int{"entity_match_points": result.TotalScore}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.Debug("distinctiveness scored",
		logging.String("phrase", phrase),
		logging.String("match_type", result.MatchType),
		logging.Int("score", result.TotalScore))

	return result, nil
}

// firstAliasHit walks the phrase words in order and returns the first word
// known as an alias, along with the most prominent entity behind it.
func (s *DistinctivenessScorer) firstAliasHit(normalized string) (string, *corpus.Entity) {
	for _, word := range textutil.Tokenize(normalized) {
		entities := s.index.LookupAliasWord(word)
		if len(entities) == 0 {
			continue
		}
		best := entities[0]
		for _, entity := range entities[1:] {
			if entity.Sitelinks > best.Sitelinks {
				best = entity
			}
		}
		return word, best
	}
	return "", nil
}
