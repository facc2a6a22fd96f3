// sitelinks.go implements the default in-process popularity source.
package popularity

import (
	"context"
	"hash/fnv"

	"github.com/quipshot/phrase-gate/internal/corpus"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/textutil"
)

const (
	// sitelinkEngagementFactor converts a sitelink count into engagement
	// units so entity-backed estimates land in the intended bands.
	sitelinkEngagementFactor = 500

	// Hashed fallback estimates stay below the lowest banding threshold.
	fallbackEngagementRange = 901
	fallbackLanguagesRange  = 10
)

// SitelinkSource derives engagement from the entity index's sitelink counts.
// Phrases with no entity match hash into a stable low-band estimate, so the
// source never errors and never varies between runs.
type SitelinkSource struct {
	index  *corpus.EntityIndex
	logger logging.Logger
}

// NewSitelinkSource creates the default popularity source.
func NewSitelinkSource(logger logging.Logger, index *corpus.EntityIndex) *SitelinkSource {
	return &SitelinkSource{
		index:  index,
		logger: logger,
	}
}

// Name identifies the source in logs and configuration.
func (s *SitelinkSource) Name() string {
	return OriginSitelinks
}

// Estimate resolves the phrase against the entity index: exact label first,
// then the best alias-word entity, then the hashed fallback.
func (s *SitelinkSource) Estimate(_ context.Context, phrase string) (Estimate, error) {
	normalized := textutil.Normalize(phrase)

	if entity, ok := s.index.LookupLabel(normalized); ok {
		return entityEstimate(entity), nil
	}

	if entity := s.bestAliasEntity(normalized); entity != nil {
		return entityEstimate(entity), nil
	}

	return hashedFallback(normalized), nil
}

// bestAliasEntity returns the highest-sitelink entity reachable through any
// word of the phrase, or nil when no word is an alias word.
func (s *SitelinkSource) bestAliasEntity(normalized string) *corpus.Entity {
	var best *corpus.Entity
	for _, word := range textutil.Tokenize(normalized) {
		for _, entity := range s.index.LookupAliasWord(word) {
			if best == nil || entity.Sitelinks > best.Sitelinks {
				best = entity
			}
		}
	}
	return best
}

func entityEstimate(entity *corpus.Entity) Estimate {
	return Estimate{
		Engagement: int64(entity.Sitelinks) * sitelinkEngagementFactor,
		Languages:  entity.Sitelinks,
		Origin:     OriginSitelinks,
	}
}

func hashedFallback(normalized string) Estimate {
	h := fnv.New64a()
	_, _ = h.Write([]byte(normalized))
	sum := h.Sum64()

	return Estimate{
		Engagement: int64(sum % fallbackEngagementRange),
		Languages:  int(sum % fallbackLanguagesRange),
		Origin:     OriginFallback,
	}
}
